package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/phrazzld/scry-anki/internal/redact"
)

// ExistenceChecker asks the store whether a phrase already has a card in the
// configured deck, using the phrase's canonical tag as the dedup key.
type ExistenceChecker struct {
	store    NoteStore
	deckName string
	logger   *slog.Logger
}

// NewExistenceChecker creates a checker scoped to one deck.
func NewExistenceChecker(store NoteStore, deckName string, logger *slog.Logger) (*ExistenceChecker, error) {
	if store == nil {
		return nil, errors.New("note store cannot be nil")
	}
	if deckName == "" {
		return nil, errors.New("deck name cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ExistenceChecker{
		store:    store,
		deckName: deckName,
		logger:   logger.With("component", "existence_checker"),
	}, nil
}

// Query builds the store search for a phrase.
func (c *ExistenceChecker) Query(phrase string) string {
	return fmt.Sprintf("deck:%q tag:%s", c.deckName, domain.CanonicalTag(phrase))
}

// Exists reports whether at least one note carries the phrase's tag.
// Any failure is logged and answered with false, so a broken store never
// blocks generation.
func (c *ExistenceChecker) Exists(ctx context.Context, phrase string) bool {
	query := c.Query(phrase)

	ids, err := c.store.FindNotes(ctx, query)
	if err != nil {
		c.logger.WarnContext(ctx, "existence check failed, treating phrase as new",
			"phrase", phrase,
			"query", query,
			"error", redact.Error(err))
		return false
	}

	if len(ids) == 0 {
		return false
	}

	c.logger.DebugContext(ctx, "phrase already in deck",
		"phrase", phrase,
		"note_count", len(ids))
	return true
}
