package service

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-anki/internal/domain"
)

// mockNoteStore is an in-memory NoteStore for unit tests.
type mockNoteStore struct {
	mu sync.Mutex

	findResult []int64
	findErr    error
	addID      int64
	addErr     error

	queries []string
	added   []*domain.Note
}

func (m *mockNoteStore) FindNotes(ctx context.Context, query string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	return m.findResult, m.findErr
}

func (m *mockNoteStore) AddNote(ctx context.Context, note *domain.Note) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, note)
	return m.addID, m.addErr
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func testNoteOptions() domain.NoteOptions {
	return domain.NoteOptions{
		DeckName:  "Default",
		ModelName: "Boşluklu",
		Fields: domain.FieldNames{
			Sentence:     "Metin",
			Definition:   "Back Extra",
			Collocations: "Collocations",
		},
		DefinitionFormat: "<b>Tanım:</b> %s",
		ProvenanceTags:   []string{"Gemini_Batch", "C1_Vocab"},
	}
}

func testRecord() *domain.ContentRecord {
	return &domain.ContentRecord{
		Definition:   "create a danger",
		Sentence:     "Unregulated leverage can {{c1::pose a risk::create a danger}} to the entire financial system.",
		Collocations: "pose a threat | pose a challenge | pose a question",
	}
}
