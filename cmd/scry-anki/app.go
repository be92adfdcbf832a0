package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/phrazzld/scry-anki/internal/batch"
	"github.com/phrazzld/scry-anki/internal/config"
	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/phrazzld/scry-anki/internal/events"
	"github.com/phrazzld/scry-anki/internal/generation"
	"github.com/phrazzld/scry-anki/internal/platform/ankiconnect"
	"github.com/phrazzld/scry-anki/internal/platform/claude"
	"github.com/phrazzld/scry-anki/internal/platform/gemini"
	"github.com/phrazzld/scry-anki/internal/platform/logger"
	"github.com/phrazzld/scry-anki/internal/redact"
	"github.com/phrazzld/scry-anki/internal/service"
)

// application holds the shared dependencies of one command invocation.
type application struct {
	config *config.Config
	logger *slog.Logger

	store     *ankiconnect.Client
	completer generation.Completer
	events    *events.InMemoryEventEmitter

	// sleeper overrides the runner's pause; nil keeps the timer.
	sleeper batch.Sleeper
}

// newApplication loads configuration, sets up logging and builds the store
// and model clients.
func newApplication(ctx context.Context, configPath string) (*application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return newApplicationWithConfig(ctx, cfg, log)
}

func newApplicationWithConfig(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	redact.AddSecret(cfg.LLM.APIKey)

	log.Debug("configuration loaded",
		"anki_url", cfg.Anki.URL,
		"deck", cfg.Anki.DeckName,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.ModelName,
		"delay", cfg.Batch.Delay)

	store, err := ankiconnect.NewClient(log, cfg.Anki)
	if err != nil {
		return nil, fmt.Errorf("failed to create anki client: %w", err)
	}

	completer, err := newCompleter(ctx, log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s completer: %w", cfg.LLM.Provider, err)
	}

	return &application{
		config:    cfg,
		logger:    log,
		store:     store,
		completer: completer,
		events:    events.NewInMemoryEventEmitter(log),
	}, nil
}

func newCompleter(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (generation.Completer, error) {
	switch cfg.Provider {
	case "anthropic":
		return claude.NewCompleter(log, cfg)
	case "gemini":
		return gemini.NewCompleter(ctx, log, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

func (app *application) noteOptions() domain.NoteOptions {
	a := app.config.Anki
	return domain.NoteOptions{
		DeckName:  a.DeckName,
		ModelName: a.ModelName,
		Fields: domain.FieldNames{
			Sentence:     a.Fields.Sentence,
			Definition:   a.Fields.Definition,
			Collocations: a.Fields.Collocations,
		},
		DefinitionFormat: a.DefinitionFormat,
		ProvenanceTags:   slices.Clone(a.Tags),
	}
}

// newRunner wires the services and the generator into a batch runner.
func (app *application) newRunner() (*batch.Runner, error) {
	prompts, err := generation.NewPromptBuilder(app.config.LLM.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	generator, err := generation.NewContentGenerator(app.logger, app.completer, prompts)
	if err != nil {
		return nil, err
	}

	checker, err := service.NewExistenceChecker(app.store, app.config.Anki.DeckName, app.logger)
	if err != nil {
		return nil, err
	}

	submitter, err := service.NewCardSubmitter(app.store, app.noteOptions(), app.logger)
	if err != nil {
		return nil, err
	}

	opts := []batch.RunnerOption{batch.WithEmitter(app.events)}
	if app.sleeper != nil {
		opts = append(opts, batch.WithSleeper(app.sleeper))
	}

	return batch.NewRunner(checker, generator, submitter, app.config.Batch.Delay, app.logger, opts...)
}

// checkStore confirms the store answers and holds the configured deck.
func (app *application) checkStore(ctx context.Context) error {
	version, err := app.store.Version(ctx)
	if err != nil {
		if ankiconnect.IsConnectionRefused(err) {
			app.logger.Error("anki is not running or AnkiConnect is not installed", "url", app.config.Anki.URL)
		}
		return fmt.Errorf("anki store check failed: %w", err)
	}

	decks, err := app.store.DeckNames(ctx)
	if err != nil {
		return fmt.Errorf("anki store check failed: %w", err)
	}

	if !slices.Contains(decks, app.config.Anki.DeckName) {
		return fmt.Errorf("deck %q not found, available decks: %v", app.config.Anki.DeckName, decks)
	}

	app.logger.Info("anki store ready",
		"version", version,
		"deck", app.config.Anki.DeckName,
		"deck_count", len(decks))
	return nil
}
