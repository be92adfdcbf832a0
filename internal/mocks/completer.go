package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-anki/internal/generation"
)

var _ generation.Completer = (*MockCompleter)(nil)

// MockCompleter implements generation.Completer for testing
type MockCompleter struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

// Complete implements the generation.Completer interface
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt)
	}

	return m.Response, m.Err
}

// Prompts returns the prompts passed to Complete, in call order.
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
