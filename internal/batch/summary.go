package batch

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-anki/internal/domain"
)

// State is the lifecycle stage of one phrase within a run.
type State string

const (
	StateStart      State = "start"
	StateChecking   State = "checking"
	StateSkip       State = "skipped"
	StateGenerating State = "generating"
	StateSubmitting State = "submitting"
	StateCounted    State = "counted"
	StateFailed     State = "failed"
)

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateSkip || s == StateCounted || s == StateFailed
}

// ItemResult records the outcome of one phrase.
type ItemResult struct {
	Phrase string
	Tag    string
	State  State
	Err    error
}

// Summary is the outcome of one batch run.
type Summary struct {
	RunID uuid.UUID

	// Lines is the number of lines in the input file, blank ones included.
	Lines int

	// Attempted counts non-empty phrases; Succeeded counts cards the store
	// accepted. Skipped and Failed split the rest.
	Attempted int
	Succeeded int
	Skipped   int
	Failed    int

	Results []ItemResult
}

// Ratio renders the run's success ratio as "<succeeded>/<attempted>".
func (s Summary) Ratio() string {
	return fmt.Sprintf("%d/%d", s.Succeeded, s.Attempted)
}

func (s *Summary) record(item ItemResult) {
	s.Results = append(s.Results, item)
	switch item.State {
	case StateCounted:
		s.Succeeded++
	case StateSkip:
		s.Skipped++
	case StateFailed:
		s.Failed++
	}
}

func newItem(phrase string) ItemResult {
	return ItemResult{Phrase: phrase, Tag: domain.CanonicalTag(phrase), State: StateStart}
}
