package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CollocationSeparator joins the related phrases inside a content record.
const CollocationSeparator = " | "

// clozePattern matches an Anki cloze deletion such as {{c1::pose a risk::endanger}}.
var clozePattern = regexp.MustCompile(`\{\{c\d+::[^{}]+?\}\}`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cloze", func(fl validator.FieldLevel) bool {
		return clozePattern.MatchString(fl.Field().String())
	})
	return v
}

// ContentRecord is the structured card content authored by the language model
// for one phrase. All three fields are required before a card is submitted.
type ContentRecord struct {
	// Definition is a short plain-text definition of the phrase.
	Definition string `json:"definition" validate:"required"`

	// Sentence embeds one cloze deletion that wraps the phrase and carries the
	// definition as its hint.
	Sentence string `json:"sentence" validate:"required,cloze"`

	// Collocations lists related phrases joined by CollocationSeparator.
	Collocations string `json:"collocations" validate:"required"`
}

// NewContentRecord trims the given fields and returns a validated record.
func NewContentRecord(definition, sentence, collocations string) (*ContentRecord, error) {
	record := &ContentRecord{
		Definition:   strings.TrimSpace(definition),
		Sentence:     strings.TrimSpace(sentence),
		Collocations: strings.TrimSpace(collocations),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate reports the first missing or malformed field.
// Blank fields wrap ErrEmptyContent, a sentence without a cloze deletion wraps
// ErrMissingCloze, and both wrap ErrValidation.
func (r *ContentRecord) Validate() error {
	trimmed := ContentRecord{
		Definition:   strings.TrimSpace(r.Definition),
		Sentence:     strings.TrimSpace(r.Sentence),
		Collocations: strings.TrimSpace(r.Collocations),
	}

	err := validate.Struct(&trimmed)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "cloze" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingCloze)
	}
	return fmt.Errorf("%w: %s: %w", ErrValidation, field, ErrEmptyContent)
}
