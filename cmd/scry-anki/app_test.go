package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/scry-anki/internal/batch"
	"github.com/phrazzld/scry-anki/internal/config"
	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/phrazzld/scry-anki/internal/events"
	"github.com/phrazzld/scry-anki/internal/mocks"
	"github.com/phrazzld/scry-anki/internal/platform/ankiconnect/ankiconnecttest"
	"github.com/phrazzld/scry-anki/internal/platform/claude"
	"github.com/phrazzld/scry-anki/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel answers generateContent calls with a fenced JSON card for
// whichever known phrase appears in the prompt.
type fakeModel struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeModel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	phrase := "account for"
	if strings.Contains(string(body), "shed light on") {
		phrase = "shed light on"
	}

	card, _ := json.Marshal(map[string]string{
		"definition":   "explain the cause",
		"sentence":     fmt.Sprintf("Seasonal demand {{c1::%s::explain the cause}} most of the variance.", phrase),
		"collocations": "account for the difference | take into account | account for losses",
	})
	reply, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]string{"text": "```json\n" + string(card) + "\n```"}},
			},
			"finishReason": "STOP",
		}},
	})

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(reply)
}

func (f *fakeModel) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig(ankiURL, llmURL string) *config.Config {
	return &config.Config{
		Anki: config.AnkiConfig{
			URL:       ankiURL,
			Version:   6,
			Timeout:   2 * time.Second,
			DeckName:  "Default",
			ModelName: "Boşluklu",
			Fields: config.FieldsConfig{
				Sentence:     "Metin",
				Definition:   "Back Extra",
				Collocations: "Collocations",
			},
			Tags:             []string{"Gemini_Batch", "C1_Vocab"},
			DefinitionFormat: "<b>Tanım:</b> %s",
		},
		LLM: config.LLMConfig{
			Provider:    "gemini",
			APIKey:      "test-gemini-key-123",
			ModelName:   "gemini-2.0-flash",
			Temperature: 0.7,
			MaxTokens:   1024,
			BaseURL:     llmURL,
		},
		Batch: config.BatchConfig{InputPath: "input.txt", Delay: 4 * time.Second},
		Log:   config.LogConfig{Level: "debug", Format: "text"},
	}
}

type harness struct {
	app     *application
	store   *ankiconnecttest.Server
	model   *fakeModel
	sleeper *mocks.RecordingSleeper
	logs    *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := ankiconnecttest.NewServer("Default")
	t.Cleanup(store.Close)

	model := &fakeModel{}
	modelServer := httptest.NewServer(model)
	t.Cleanup(modelServer.Close)

	logs := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	app, err := newApplicationWithConfig(context.Background(), testConfig(store.URL, modelServer.URL), log)
	require.NoError(t, err)

	h := &harness{app: app, store: store, model: model, sleeper: &mocks.RecordingSleeper{}, logs: logs}
	app.sleeper = h.sleeper
	return h
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunBatchEndToEnd(t *testing.T) {
	h := newHarness(t)
	h.store.Seed(domain.Note{
		DeckName:  "Default",
		ModelName: "Boşluklu",
		Fields:    map[string]string{"Metin": "existing"},
		Tags:      []string{"Gemini_Batch", "vocab:pose_a_risk"},
	})

	err := h.app.runBatch(context.Background(), writeFile(t, "pose a risk\n\naccount for\nshed light on\n"))

	require.NoError(t, err)
	assert.Equal(t, 2, h.model.Calls())
	assert.Equal(t, 3, h.store.Calls("findNotes"))
	assert.Equal(t, 2, h.store.Calls("addNote"))
	assert.Len(t, h.sleeper.Delays(), 3)
	assert.Contains(t, h.logs.String(), "ratio=2/3")

	notes := h.store.Notes()
	require.Len(t, notes, 3)
	added := notes[1]
	assert.Equal(t, []string{"Gemini_Batch", "C1_Vocab", "vocab:account_for"}, added.Tags)
	assert.Equal(t, "<b>Tanım:</b> explain the cause", added.Fields["Back Extra"])
	assert.Contains(t, added.Fields["Metin"], "{{c1::account for::explain the cause}}")
	assert.NotContains(t, added.Fields["Metin"], "```")
	assert.NotContains(t, h.logs.String(), "test-gemini-key-123")
}

func TestRunBatchWritesReport(t *testing.T) {
	h := newHarness(t)
	var report bytes.Buffer
	h.app.events.RegisterHandler(events.NewJSONLinesHandler(&report))

	require.NoError(t, h.app.runBatch(context.Background(), writeFile(t, "account for\n")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(report.Bytes()), &line))
	assert.Equal(t, "account for", line["phrase"])
	assert.Equal(t, "counted", line["state"])
	assert.Equal(t, "vocab:account_for", line["tag"])
}

func TestRunBatchMissingInput(t *testing.T) {
	h := newHarness(t)

	err := h.app.runBatch(context.Background(), filepath.Join(t.TempDir(), "input.txt"))

	require.NoError(t, err)
	assert.Empty(t, h.store.Requests())
	assert.Zero(t, h.model.Calls())
	assert.Contains(t, h.logs.String(), "input file not found")
}

func TestRunBatchReportCreatedOnFirstItem(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "report.jsonl")
	report := h.app.attachReport(path)

	require.NoError(t, h.app.runBatch(context.Background(), filepath.Join(t.TempDir(), "input.txt")))
	require.NoError(t, report.Close())
	assert.NoFileExists(t, path, "an aborted run leaves no report")

	require.NoError(t, h.app.runBatch(context.Background(), writeFile(t, "account for\n")))
	require.NoError(t, report.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"phrase":"account for"`)
}

func TestRunBatchUnreadableInput(t *testing.T) {
	h := newHarness(t)
	path := writeFile(t, "account for\n"+strings.Repeat("x", 1024*1024+1)+"\n")

	err := h.app.runBatch(context.Background(), path)

	require.ErrorIs(t, err, batch.ErrInputUnreadable)
	assert.Empty(t, h.store.Requests())
	assert.Zero(t, h.model.Calls())
	assert.NotContains(t, h.logs.String(), "not found")
}

func TestRunBatchStoreClosed(t *testing.T) {
	h := newHarness(t)
	h.store.Close()

	err := h.app.runBatch(context.Background(), writeFile(t, "account for\n"))

	require.NoError(t, err)
	assert.Equal(t, 1, h.model.Calls(), "existence check fails open")
	assert.Contains(t, h.logs.String(), "ratio=0/1")
	assert.Contains(t, h.logs.String(), "is the desktop app running")
}

func TestCheckStore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.checkStore(context.Background()))
	assert.Equal(t, 1, h.store.Calls("version"))
	assert.Equal(t, 1, h.store.Calls("deckNames"))

	h.app.config.Anki.DeckName = "Missing"
	err := h.app.checkStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `deck "Missing" not found`)

	h.store.Close()
	assert.Error(t, h.app.checkStore(context.Background()))
}

func TestNewCompleterSelectsProvider(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.LLMConfig{APIKey: "k-123456789", ModelName: "m", MaxTokens: 10, BaseURL: "http://127.0.0.1:1"}

	cfg.Provider = "gemini"
	c, err := newCompleter(context.Background(), log, cfg)
	require.NoError(t, err)
	assert.IsType(t, &gemini.Completer{}, c)

	cfg.Provider = "anthropic"
	c, err = newCompleter(context.Background(), log, cfg)
	require.NoError(t, err)
	assert.IsType(t, &claude.Completer{}, c)

	cfg.Provider = "openai"
	_, err = newCompleter(context.Background(), log, cfg)
	assert.Error(t, err)
}

func TestRootCommandLayout(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "check")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestRunCommandRejectsMissingConfigFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"run", "--config", filepath.Join(t.TempDir(), "nope.yaml")})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	assert.Error(t, root.Execute())
}

func TestConfigCommandMasksKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCRY_LLM_API_KEY", "AIzaSyExampleKey0123456789")
	t.Setenv("SCRY_ANKI_DECK_NAME", "Vocab")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{"config"})
	root.SetOut(&out)

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "deck_name: Vocab")
	assert.Contains(t, out.String(), "****6789")
	assert.NotContains(t, out.String(), "AIzaSyExampleKey0123456789")
}
