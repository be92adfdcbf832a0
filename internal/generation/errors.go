package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when the language model call itself fails
	ErrGenerationFailed = errors.New("failed to generate card content")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPhrase is returned when a prompt is requested for a blank phrase
	ErrEmptyPhrase = errors.New("phrase cannot be empty")
)
