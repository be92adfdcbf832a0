// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrMissingCloze is returned when a sentence carries no cloze deletion.
	ErrMissingCloze = errors.New("sentence must contain a cloze deletion")

	// ErrEmptyPhrase is returned when a note is built for a blank phrase.
	ErrEmptyPhrase = errors.New("phrase cannot be empty")

	// ErrDuplicateField is returned when two content fields map to the same
	// store field name.
	ErrDuplicateField = errors.New("field names must be distinct")

	// ErrDefinitionFormat is returned when a definition format does not hold
	// exactly one %s verb.
	ErrDefinitionFormat = errors.New("definition format must contain exactly one %s")
)
