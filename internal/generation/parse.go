package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/phrazzld/scry-anki/internal/domain"
)

// Models often wrap JSON in a Markdown code fence despite being told not to,
// with or without a language tag (```json).
var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// contentPayload is the JSON object the prompt asks the model to emit.
type contentPayload struct {
	Definition   flexString `json:"definition"`
	Sentence     flexString `json:"sentence"`
	Collocations flexString `json:"collocations"`
}

// flexString accepts a JSON string, or an array of strings joined with the
// collocation separator. Models sometimes return the collocations as a list.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*s = flexString(strings.Join(items, domain.CollocationSeparator))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = flexString(str)
	return nil
}

// StripFences removes a leading and a trailing code fence from text along
// with the surrounding whitespace. Text without fences is only trimmed.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ParseContent converts raw model output into a validated content record.
// Every failure wraps ErrInvalidResponse with the reason; the function never
// panics on arbitrary input.
func ParseContent(raw string) (*domain.ContentRecord, error) {
	text := StripFences(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrInvalidResponse)
	}

	var payload contentPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}

	record, err := domain.NewContentRecord(
		string(payload.Definition),
		string(payload.Sentence),
		string(payload.Collocations),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return record, nil
}
