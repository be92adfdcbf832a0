package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/phrazzld/scry-anki/internal/generation"
)

var _ generation.Generator = (*MockGenerator)(nil)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, phrase string) (*domain.ContentRecord, error)

	// Default response values
	Record *domain.ContentRecord
	Err    error

	mu      sync.Mutex
	phrases []string
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, phrase string) (*domain.ContentRecord, error) {
	m.mu.Lock()
	m.phrases = append(m.phrases, phrase)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, phrase)
	}

	return m.Record, m.Err
}

// Phrases returns the phrases passed to Generate, in call order.
func (m *MockGenerator) Phrases() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.phrases...)
}

// NewMockGeneratorWithRecord creates a MockGenerator that returns record for every phrase
func NewMockGeneratorWithRecord(record *domain.ContentRecord) *MockGenerator {
	return &MockGenerator{Record: record}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return &MockGenerator{Err: generation.ErrGenerationFailed}
}

// SampleRecord returns a valid content record for tests.
func SampleRecord() *domain.ContentRecord {
	return &domain.ContentRecord{
		Definition:   "present a danger",
		Sentence:     "Unchecked inflation could {{c1::pose a risk::present a danger}} to growth.",
		Collocations: "pose a threat | pose a challenge | pose a question",
	}
}
