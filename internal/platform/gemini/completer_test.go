package gemini_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/phrazzld/scry-anki/internal/config"
	"github.com/phrazzld/scry-anki/internal/generation"
	"github.com/phrazzld/scry-anki/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini serves a canned generateContent response and records request bodies.
type fakeGemini struct {
	mu     sync.Mutex
	bodies []string
	status int
	reply  string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = io.WriteString(w, f.reply)
}

func newTestCompleter(t *testing.T, fake *fakeGemini) *gemini.Completer {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	completer, err := gemini.NewCompleter(context.Background(), logger, config.LLMConfig{
		Provider:    "gemini",
		APIKey:      "test-api-key",
		ModelName:   "gemini-2.0-flash",
		Temperature: 0.7,
		MaxTokens:   512,
		BaseURL:     server.URL,
	})
	require.NoError(t, err)
	return completer
}

func TestCompleteReturnsCandidateText(t *testing.T) {
	fake := &fakeGemini{reply: `{
		"candidates": [{
			"content": {"role": "model", "parts": [{"text": "` + "```json\\n" + `"}, {"text": "{\"definition\": \"d\"}\n` + "```" + `"}]},
			"finishReason": "STOP"
		}]
	}`}
	completer := newTestCompleter(t, fake)

	text, err := completer.Complete(context.Background(), "Target Collocation: \"pose a risk\"")

	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"definition\": \"d\"}\n```", text)

	require.Len(t, fake.bodies, 1, "no retries")
	assert.Contains(t, fake.bodies[0], "pose a risk")
}

func TestCompleteSendsGenerationConfig(t *testing.T) {
	fake := &fakeGemini{reply: `{"candidates": [{"content": {"role": "model", "parts": [{"text": "ok"}]}, "finishReason": "STOP"}]}`}
	completer := newTestCompleter(t, fake)

	_, err := completer.Complete(context.Background(), "prompt")
	require.NoError(t, err)

	require.Len(t, fake.bodies, 1)
	var req struct {
		GenerationConfig struct {
			MaxOutputTokens int     `json:"maxOutputTokens"`
			Temperature     float64 `json:"temperature"`
		} `json:"generationConfig"`
	}
	require.NoError(t, json.Unmarshal([]byte(fake.bodies[0]), &req))
	assert.Equal(t, 512, req.GenerationConfig.MaxOutputTokens)
	assert.InDelta(t, 0.7, req.GenerationConfig.Temperature, 0.001)
}

func TestCompleteSafetyBlock(t *testing.T) {
	fake := &fakeGemini{reply: `{"candidates": [{"finishReason": "SAFETY"}]}`}
	completer := newTestCompleter(t, fake)

	_, err := completer.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, generation.ErrContentBlocked)
}

func TestCompleteNoCandidates(t *testing.T) {
	fake := &fakeGemini{reply: `{"candidates": []}`}
	completer := newTestCompleter(t, fake)

	_, err := completer.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestCompleteAPIError(t *testing.T) {
	fake := &fakeGemini{
		status: http.StatusTooManyRequests,
		reply:  `{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`,
	}
	completer := newTestCompleter(t, fake)

	_, err := completer.Complete(context.Background(), "prompt")

	require.Error(t, err)
	assert.NotErrorIs(t, err, generation.ErrInvalidResponse)
	assert.Len(t, fake.bodies, 1, "rate limit errors are not retried")
}

func TestNewCompleterValidation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	_, err := gemini.NewCompleter(context.Background(), nil, config.LLMConfig{APIKey: "k", ModelName: "m"})
	assert.Error(t, err)

	_, err = gemini.NewCompleter(context.Background(), logger, config.LLMConfig{ModelName: "m"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = gemini.NewCompleter(context.Background(), logger, config.LLMConfig{APIKey: "k"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
