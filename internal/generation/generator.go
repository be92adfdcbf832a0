package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/phrazzld/scry-anki/internal/redact"
)

// Generator defines the interface for authoring card content for a phrase.
// This interface serves as a boundary between the batch pipeline and
// external AI/LLM services.
type Generator interface {
	// Generate returns the content record for phrase, or an error wrapping
	// ErrGenerationFailed, ErrContentBlocked or ErrInvalidResponse.
	Generate(ctx context.Context, phrase string) (*domain.ContentRecord, error)
}

// Completer sends a single-turn prompt to a language model and returns the
// raw response text. Provider adapters implement it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ContentGenerator implements Generator on top of a Completer.
type ContentGenerator struct {
	logger    *slog.Logger
	completer Completer
	prompts   *PromptBuilder
}

var _ Generator = (*ContentGenerator)(nil)

// NewContentGenerator creates a generator that renders prompts with prompts
// and sends them through completer.
func NewContentGenerator(logger *slog.Logger, completer Completer, prompts *PromptBuilder) (*ContentGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", ErrInvalidConfig)
	}
	if prompts == nil {
		return nil, fmt.Errorf("%w: prompt builder cannot be nil", ErrInvalidConfig)
	}

	return &ContentGenerator{
		logger:    logger.With("component", "content_generator"),
		completer: completer,
		prompts:   prompts,
	}, nil
}

// Generate builds the prompt for phrase, calls the model once, strips code
// fences from the answer and parses it. Nothing is retried.
func (g *ContentGenerator) Generate(ctx context.Context, phrase string) (*domain.ContentRecord, error) {
	prompt, err := g.prompts.Build(phrase)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "generating card content", "phrase", phrase)

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		if !errors.Is(err, ErrContentBlocked) && !errors.Is(err, ErrInvalidResponse) {
			err = fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
		g.logger.ErrorContext(ctx, "language model call failed",
			"phrase", phrase,
			"error", redact.Error(err))
		return nil, err
	}

	record, err := ParseContent(raw)
	if err != nil {
		g.logger.ErrorContext(ctx, "could not parse language model response",
			"phrase", phrase,
			"error", err.Error(),
			"response_length", len(raw))
		g.logger.DebugContext(ctx, "unparsed response", "phrase", phrase, "response", raw)
		return nil, err
	}

	g.logger.DebugContext(ctx, "card content generated",
		"phrase", phrase,
		"definition", record.Definition)

	return record, nil
}
