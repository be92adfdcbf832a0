package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-anki/internal/batch"
	"github.com/phrazzld/scry-anki/internal/domain"
)

var (
	_ batch.Checker   = (*MockChecker)(nil)
	_ batch.Submitter = (*MockSubmitter)(nil)
)

// MockChecker reports whether a card exists for a phrase.
type MockChecker struct {
	// ExistsFn allows test cases to mock the Exists behavior
	ExistsFn func(ctx context.Context, phrase string) bool

	// Existing lists phrases reported as present when ExistsFn is nil
	Existing map[string]bool

	mu      sync.Mutex
	phrases []string
}

// Exists records the call and answers from ExistsFn or Existing.
func (m *MockChecker) Exists(ctx context.Context, phrase string) bool {
	m.mu.Lock()
	m.phrases = append(m.phrases, phrase)
	m.mu.Unlock()

	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, phrase)
	}
	return m.Existing[phrase]
}

// Phrases returns the phrases passed to Exists, in call order.
func (m *MockChecker) Phrases() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.phrases...)
}

// SubmitCall captures one Submit invocation.
type SubmitCall struct {
	Record *domain.ContentRecord
	Phrase string
}

// MockSubmitter records submitted cards.
type MockSubmitter struct {
	// SubmitFn allows test cases to mock the Submit behavior
	SubmitFn func(ctx context.Context, record *domain.ContentRecord, phrase string) bool

	// Result is returned when SubmitFn is nil
	Result bool

	mu    sync.Mutex
	calls []SubmitCall
}

// Submit records the call and answers from SubmitFn or Result.
func (m *MockSubmitter) Submit(ctx context.Context, record *domain.ContentRecord, phrase string) bool {
	m.mu.Lock()
	m.calls = append(m.calls, SubmitCall{Record: record, Phrase: phrase})
	m.mu.Unlock()

	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, record, phrase)
	}
	return m.Result
}

// Calls returns the recorded Submit invocations.
func (m *MockSubmitter) Calls() []SubmitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SubmitCall(nil), m.calls...)
}
