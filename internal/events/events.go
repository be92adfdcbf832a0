package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ItemEvent reports the final state of one phrase in a batch run.
type ItemEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// RunID groups the events of one batch run
	RunID uuid.UUID `json:"run_id"`

	Phrase string `json:"phrase"`
	Tag    string `json:"tag"`
	State  string `json:"state"`

	// Error is the redacted failure text, empty on success or skip
	Error string `json:"error,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewItemEvent creates an ItemEvent stamped with a fresh ID and the current time.
func NewItemEvent(runID uuid.UUID, phrase, tag, state, errText string) *ItemEvent {
	return &ItemEvent{
		ID:        uuid.New(),
		RunID:     runID,
		Phrase:    phrase,
		Tag:       tag,
		State:     state,
		Error:     errText,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ItemEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the batch runner to publish progress without direct knowledge
// of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ItemEvent) error
}
