package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/phrazzld/scry-anki/internal/platform/ankiconnect"
	"github.com/phrazzld/scry-anki/internal/redact"
)

// previewLength bounds the sentence excerpt logged after a successful submit.
const previewLength = 50

// CardSubmitter turns a content record into a note and adds it to the store.
type CardSubmitter struct {
	store  NoteStore
	opts   domain.NoteOptions
	logger *slog.Logger
}

// NewCardSubmitter creates a submitter that lays out notes according to opts.
func NewCardSubmitter(store NoteStore, opts domain.NoteOptions, logger *slog.Logger) (*CardSubmitter, error) {
	if store == nil {
		return nil, errors.New("note store cannot be nil")
	}
	if opts.DeckName == "" || opts.ModelName == "" {
		return nil, errors.New("deck and model names cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardSubmitter{
		store:  store,
		opts:   opts,
		logger: logger.With("component", "card_submitter"),
	}, nil
}

// Submit adds one card and reports whether the store accepted it.
func (s *CardSubmitter) Submit(ctx context.Context, record *domain.ContentRecord, phrase string) bool {
	note, err := domain.NewNote(record, phrase, s.opts)
	if err != nil {
		s.logger.ErrorContext(ctx, "cannot build note",
			"phrase", phrase,
			"error", err)
		return false
	}

	id, err := s.store.AddNote(ctx, note)
	if err != nil {
		var storeErr *ankiconnect.StoreError
		switch {
		case errors.As(err, &storeErr):
			s.logger.WarnContext(ctx, "anki rejected note",
				"phrase", phrase,
				"store_error", storeErr.Message)
		case ankiconnect.IsConnectionRefused(err):
			s.logger.ErrorContext(ctx, "cannot reach anki, is the desktop app running with AnkiConnect?",
				"phrase", phrase,
				"error", redact.Error(err))
		default:
			s.logger.ErrorContext(ctx, "failed to submit note",
				"phrase", phrase,
				"error", redact.Error(err))
		}
		return false
	}

	s.logger.InfoContext(ctx, "note added",
		"phrase", phrase,
		"note_id", id,
		"sentence", preview(record.Sentence))
	return true
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength]) + "..."
}
