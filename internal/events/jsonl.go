package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONLinesHandler writes each event as one JSON object per line.
type JSONLinesHandler struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLinesHandler creates a handler that writes to w.
func NewJSONLinesHandler(w io.Writer) *JSONLinesHandler {
	return &JSONLinesHandler{enc: json.NewEncoder(w)}
}

// HandleEvent appends the event to the output.
func (h *JSONLinesHandler) HandleEvent(_ context.Context, event *ItemEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enc.Encode(event); err != nil {
		return fmt.Errorf("failed to write event %s: %w", event.ID, err)
	}
	return nil
}
