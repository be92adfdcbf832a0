// Package logger configures the slog logger shared by the CLI and the batch
// pipeline.
package logger
