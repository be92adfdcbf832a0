package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/scry-anki/internal/batch"
	"github.com/phrazzld/scry-anki/internal/config"
	"github.com/phrazzld/scry-anki/internal/events"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "scry-anki",
		Short:         "Generate Anki cloze cards for vocabulary phrases",
		Long:          `Reads phrases from a file, asks an LLM for a definition, a cloze sentence and related collocations, and adds one card per new phrase through AnkiConnect.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file (default ./scry-anki.yaml if present)")

	root.AddCommand(newRunCmd(opts), newCheckCmd(opts), newConfigCmd(opts))
	return root
}

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		delay      time.Duration
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "run [input-file]",
		Short: "Process a phrase file and add the missing cards",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(context.Background(), root.configPath)
			if err != nil {
				return err
			}

			inputPath := app.config.Batch.InputPath
			if len(args) > 0 {
				inputPath = args[0]
			}
			if cmd.Flags().Changed("delay") {
				app.config.Batch.Delay = delay
			}

			if reportPath != "" {
				report := app.attachReport(reportPath)
				defer func() { _ = report.Close() }()
			}

			return app.runBatch(context.Background(), inputPath)
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", 0, "Pause after every phrase (overrides batch.delay)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write one JSON line per processed phrase to this file")
	return cmd
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that AnkiConnect is reachable and the deck exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(context.Background(), root.configPath)
			if err != nil {
				return err
			}
			return app.checkStore(context.Background())
		},
	}
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			out, err := cfg.MarshalRedactedYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// runBatch executes one batch. An input file that cannot be opened is
// reported and ends the command without an error exit.
func (app *application) runBatch(ctx context.Context, inputPath string) error {
	runner, err := app.newRunner()
	if err != nil {
		return fmt.Errorf("failed to create batch runner: %w", err)
	}

	summary, err := runner.Run(ctx, inputPath)
	switch {
	case errors.Is(err, batch.ErrInputUnavailable) && errors.Is(err, fs.ErrNotExist):
		app.logger.Error("input file not found, create it next to the binary or pass a path",
			slog.String("path", inputPath))
		return nil
	case errors.Is(err, batch.ErrInputUnavailable):
		app.logger.Error("cannot open input file", slog.String("path", inputPath))
		return nil
	case errors.Is(err, batch.ErrInputUnreadable):
		return fmt.Errorf("input file %s is not a readable phrase list: %w", inputPath, err)
	}
	if err != nil {
		return err
	}

	app.logger.Info("cards added", slog.String("ratio", summary.Ratio()), slog.Int("lines", summary.Lines))
	return nil
}

// reportFile is a run report that is created on its first write, so a run
// that stops before any phrase leaves no file behind.
type reportFile struct {
	path string
	f    *os.File
}

// attachReport registers a JSON-lines report at path with the event emitter.
// The caller closes the returned file.
func (app *application) attachReport(path string) *reportFile {
	report := &reportFile{path: path}
	app.events.RegisterHandler(events.NewJSONLinesHandler(report))
	return report
}

func (r *reportFile) Write(p []byte) (int, error) {
	if r.f == nil {
		f, err := os.Create(r.path)
		if err != nil {
			return 0, fmt.Errorf("failed to create report file: %w", err)
		}
		r.f = f
	}
	return r.f.Write(p)
}

func (r *reportFile) Close() error {
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}
