// Package claude implements generation.Completer with Anthropic's Messages API.
package claude

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/phrazzld/scry-anki/internal/config"
	"github.com/phrazzld/scry-anki/internal/generation"
)

// Completer sends single-turn prompts to a Claude model.
type Completer struct {
	logger      *slog.Logger
	client      anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature float64
}

var _ generation.Completer = (*Completer)(nil)

// NewCompleter creates an Anthropic-backed completer. The SDK's automatic
// retries are disabled; a failed call is reported once.
func NewCompleter(logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Completer{
		logger:      logger.With("component", "claude_completer"),
		client:      anthropic.NewClient(opts...),
		model:       anthropic.Model(cfg.ModelName),
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// Complete returns the concatenated text blocks of the model's reply.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.DebugContext(ctx, "calling anthropic messages API",
		"model", string(c.model),
		"prompt_length", len(prompt))

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("%w: empty response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: response has no text", generation.ErrInvalidResponse)
	}

	c.logger.DebugContext(ctx, "anthropic call finished",
		"stop_reason", string(msg.StopReason),
		"response_length", b.Len())

	return b.String(), nil
}
