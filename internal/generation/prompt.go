package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/scry-anki/internal/domain"
)

// The cloze syntax itself uses {{ }}, so templates use [[ ]] for actions.
const (
	leftDelim  = "[["
	rightDelim = "]]"
)

//go:embed prompts/cloze_card.tmpl
var defaultPromptTemplate string

// promptData represents the data passed to the prompt template
type promptData struct {
	Phrase    string
	Separator string
}

// PromptBuilder renders the card prompt for a phrase.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the template at path, or the embedded default when
// path is empty.
func NewPromptBuilder(path string) (*PromptBuilder, error) {
	content := defaultPromptTemplate
	name := "cloze_card"

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, path, err)
		}
		content = string(data)
		name = path
	}

	tmpl, err := template.New(name).Delims(leftDelim, rightDelim).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build returns the prompt asking for a definition, a cloze sentence and
// three collocations for phrase.
func (b *PromptBuilder) Build(phrase string) (string, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return "", ErrEmptyPhrase
	}

	var buf bytes.Buffer
	err := b.tmpl.Execute(&buf, promptData{
		Phrase:    phrase,
		Separator: domain.CollocationSeparator,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}
