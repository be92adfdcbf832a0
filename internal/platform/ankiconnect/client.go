package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"syscall"

	"github.com/phrazzld/scry-anki/internal/config"
	"github.com/phrazzld/scry-anki/internal/domain"
)

// ProtocolVersion is the AnkiConnect API version this client speaks.
const ProtocolVersion = 6

// request is the body of every AnkiConnect call.
type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

// envelope is the body of every AnkiConnect reply.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Client talks to one AnkiConnect endpoint.
type Client struct {
	url        string
	version    int
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a client for the endpoint described by cfg.
func NewClient(logger *slog.Logger, cfg config.AnkiConfig, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.URL == "" {
		return nil, errors.New("anki URL cannot be empty")
	}

	version := cfg.Version
	if version <= 0 {
		version = ProtocolVersion
	}

	c := &Client{
		url:        cfg.URL,
		version:    version,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "ankiconnect"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FindNotes returns the IDs of the notes matching an Anki search query.
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	if err := c.invoke(ctx, "findNotes", map[string]any{"query": query}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddNote stores one note and returns its ID.
func (c *Client) AddNote(ctx context.Context, note *domain.Note) (int64, error) {
	if note == nil {
		return 0, errors.New("note cannot be nil")
	}

	var id int64
	if err := c.invoke(ctx, "addNote", map[string]any{"note": note}, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Version returns the protocol version reported by the add-on.
func (c *Client) Version(ctx context.Context) (int, error) {
	var v int
	if err := c.invoke(ctx, "version", nil, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// DeckNames lists the decks of the open collection.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.invoke(ctx, "deckNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Client) invoke(ctx context.Context, action string, params any, result any) error {
	body, err := json.Marshal(request{Action: action, Version: c.version, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.DebugContext(ctx, "calling ankiconnect", "action", action)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnreachable, action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: unexpected status %d", ErrUnreachable, action, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: reading body: %w", ErrUnreachable, action, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidResponse, action, err)
	}

	if env.Error != nil {
		return &StoreError{Action: action, Message: *env.Error}
	}

	if result == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return fmt.Errorf("%w: %s result: %w", ErrInvalidResponse, action, err)
	}
	return nil
}

// IsConnectionRefused reports whether err was caused by nothing listening on
// the store's port, which usually means the Anki desktop app is closed.
func IsConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
