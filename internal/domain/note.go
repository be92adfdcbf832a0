package domain

import (
	"fmt"
	"strings"
)

// FieldNames maps the three content fields onto the note type's field names
// in the flashcard store.
type FieldNames struct {
	Sentence     string
	Definition   string
	Collocations string
}

// Validate rejects empty or repeated field names; a repeated name would make
// one field silently overwrite another.
func (f FieldNames) Validate() error {
	if f.Sentence == "" || f.Definition == "" || f.Collocations == "" {
		return fmt.Errorf("%w: field names cannot be empty", ErrValidation)
	}
	if f.Sentence == f.Definition || f.Sentence == f.Collocations || f.Definition == f.Collocations {
		return fmt.Errorf("%w: %w", ErrValidation, ErrDuplicateField)
	}
	return nil
}

// ValidDefinitionFormat reports whether format is empty or holds exactly one
// %s and no other verb. Escaped percent signs (%%) are allowed.
func ValidDefinitionFormat(format string) bool {
	if format == "" {
		return true
	}
	unescaped := strings.ReplaceAll(format, "%%", "")
	return strings.Count(unescaped, "%") == 1 && strings.Count(unescaped, "%s") == 1
}

// NoteOptions carries the store-side settings applied to every note.
type NoteOptions struct {
	DeckName  string
	ModelName string
	Fields    FieldNames

	// DefinitionFormat renders the definition field; it must contain one %s.
	// An empty format stores the bare definition.
	DefinitionFormat string

	// ProvenanceTags label every note created by a batch run.
	ProvenanceTags []string
}

// Note is the unit persisted in the flashcard store: one note per phrase.
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
}

// NewNote maps a content record onto the store's note schema and labels it
// with the provenance tags plus the phrase's canonical tag.
func NewNote(record *ContentRecord, phrase string, opts NoteOptions) (*Note, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: content record is nil", ErrValidation)
	}
	if strings.TrimSpace(phrase) == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPhrase)
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Fields.Validate(); err != nil {
		return nil, err
	}
	if !ValidDefinitionFormat(opts.DefinitionFormat) {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrDefinitionFormat)
	}

	definition := record.Definition
	if opts.DefinitionFormat != "" {
		definition = fmt.Sprintf(opts.DefinitionFormat, record.Definition)
	}

	tags := make([]string, 0, len(opts.ProvenanceTags)+1)
	tags = append(tags, opts.ProvenanceTags...)
	tags = append(tags, CanonicalTag(phrase))

	return &Note{
		DeckName:  opts.DeckName,
		ModelName: opts.ModelName,
		Fields: map[string]string{
			opts.Fields.Sentence:     record.Sentence,
			opts.Fields.Definition:   definition,
			opts.Fields.Collocations: record.Collocations,
		},
		Tags: tags,
	}, nil
}
