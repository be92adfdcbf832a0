package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/phrazzld/scry-anki/internal/events"
	"github.com/phrazzld/scry-anki/internal/redact"
)

// Checker reports whether a phrase already has a card. Implementations
// answer false when they cannot tell.
type Checker interface {
	Exists(ctx context.Context, phrase string) bool
}

// Generator produces card content for a phrase.
type Generator interface {
	Generate(ctx context.Context, phrase string) (*domain.ContentRecord, error)
}

// Submitter stores a card and reports whether the store accepted it.
type Submitter interface {
	Submit(ctx context.Context, record *domain.ContentRecord, phrase string) bool
}

// Sleeper pauses between items.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

// ErrSubmitRejected marks an item whose card the store did not accept.
var ErrSubmitRejected = errors.New("card not submitted")

// TimerSleeper blocks on a timer, returning early if ctx is done.
type TimerSleeper struct{}

// Sleep waits for d or for ctx to end.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Runner processes phrase files one item at a time.
type Runner struct {
	checker   Checker
	generator Generator
	submitter Submitter
	sleeper   Sleeper
	emitter   events.EventEmitter
	delay     time.Duration
	logger    *slog.Logger
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithSleeper replaces the timer-based pause.
func WithSleeper(s Sleeper) RunnerOption {
	return func(r *Runner) {
		r.sleeper = s
	}
}

// WithEmitter publishes an events.ItemEvent after every processed phrase.
func WithEmitter(e events.EventEmitter) RunnerOption {
	return func(r *Runner) {
		r.emitter = e
	}
}

// NewRunner creates a runner that pauses for delay after every non-empty item.
func NewRunner(
	checker Checker,
	generator Generator,
	submitter Submitter,
	delay time.Duration,
	logger *slog.Logger,
	opts ...RunnerOption,
) (*Runner, error) {
	if checker == nil {
		return nil, ErrNilChecker
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if submitter == nil {
		return nil, ErrNilSubmitter
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	r := &Runner{
		checker:   checker,
		generator: generator,
		submitter: submitter,
		sleeper:   TimerSleeper{},
		delay:     delay,
		logger:    logger.With("component", "batch_runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run processes every phrase in the file at inputPath. A file that cannot be
// opened returns ErrInputUnavailable and one that cannot be scanned returns
// ErrInputUnreadable, both before any other call; per-item failures are
// recorded in the summary and never abort the run.
func (r *Runner) Run(ctx context.Context, inputPath string) (Summary, error) {
	summary := Summary{RunID: uuid.New()}
	log := r.logger.With("run_id", summary.RunID)

	in, err := ReadPhrases(inputPath)
	if err != nil {
		log.ErrorContext(ctx, "cannot read input file",
			"path", inputPath,
			"error", redact.Error(err))
		return summary, err
	}

	summary.Lines = in.Lines
	log.InfoContext(ctx, "input file loaded",
		"path", inputPath,
		"lines", in.Lines,
		"phrases", len(in.Phrases))

	for _, phrase := range in.Phrases {
		summary.Attempted++
		item := r.process(ctx, log, phrase)
		summary.record(item)
		r.emit(ctx, log, summary.RunID, item)

		r.sleeper.Sleep(ctx, r.delay)
	}

	log.InfoContext(ctx, "batch complete",
		"added", summary.Ratio(),
		"skipped", summary.Skipped,
		"failed", summary.Failed)

	return summary, nil
}

func (r *Runner) process(ctx context.Context, log *slog.Logger, phrase string) ItemResult {
	item := newItem(phrase)
	log = log.With("phrase", phrase)

	// 1. Skip phrases the store already holds
	item.State = StateChecking
	log.InfoContext(ctx, "checking store")
	if r.checker.Exists(ctx, phrase) {
		item.State = StateSkip
		log.InfoContext(ctx, "phrase already exists, skipping", "tag", item.Tag)
		return item
	}

	// 2. Generate card content
	item.State = StateGenerating
	log.InfoContext(ctx, "generating content")
	record, err := r.generator.Generate(ctx, phrase)
	if err != nil {
		item.State = StateFailed
		item.Err = err
		log.WarnContext(ctx, "content generation failed, card not created", "error", redact.Error(err))
		return item
	}

	// 3. Submit the card
	item.State = StateSubmitting
	if !r.submitter.Submit(ctx, record, phrase) {
		item.State = StateFailed
		item.Err = ErrSubmitRejected
		return item
	}

	item.State = StateCounted
	return item
}

func (r *Runner) emit(ctx context.Context, log *slog.Logger, runID uuid.UUID, item ItemResult) {
	if r.emitter == nil {
		return
	}

	var errText string
	if item.Err != nil {
		errText = redact.Error(item.Err)
	}

	event := events.NewItemEvent(runID, item.Phrase, item.Tag, string(item.State), errText)
	if err := r.emitter.EmitEvent(ctx, event); err != nil {
		log.WarnContext(ctx, "failed to publish item event", "phrase", item.Phrase, "error", err)
	}
}
