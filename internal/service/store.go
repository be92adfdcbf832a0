package service

import (
	"context"

	"github.com/phrazzld/scry-anki/internal/domain"
)

// NoteStore defines the flashcard store operations used by the services.
// It is implemented by ankiconnect.Client.
type NoteStore interface {
	// FindNotes returns the IDs of notes matching a store search query
	FindNotes(ctx context.Context, query string) ([]int64, error)

	// AddNote persists a note and returns its ID
	AddNote(ctx context.Context, note *domain.Note) (int64, error)
}
