// Package ankiconnecttest provides an in-memory AnkiConnect server for tests
// and dry runs.
package ankiconnecttest

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-anki/internal/domain"
)

// StoredNote is a note held by the fake store.
type StoredNote struct {
	ID int64
	domain.Note
}

// Request is one decoded call received by the fake store.
type Request struct {
	Action  string          `json:"action"`
	Version int             `json:"version"`
	Params  json.RawMessage `json:"params"`
}

// Server is a fake AnkiConnect endpoint backed by an in-memory collection.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	decks    []string
	notes    []StoredNote
	nextID   int64
	failures map[string]string
	requests []Request
}

var queryPattern = regexp.MustCompile(`(deck|tag):("[^"]*"|\S+)`)

// NewServer starts a fake store that knows the given decks. Callers must
// Close it.
func NewServer(decks ...string) *Server {
	s := &Server{
		decks:    slices.Clone(decks),
		nextID:   1_700_000_000_000,
		failures: make(map[string]string),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/", s.handle)

	s.Server = httptest.NewServer(r)
	return s
}

// Seed stores a note as if it had been added earlier.
func (s *Server) Seed(note domain.Note) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(note)
}

// FailAction makes every call to action reply with the given store error.
func (s *Server) FailAction(action, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[action] = message
}

// Notes returns a copy of the stored notes.
func (s *Server) Notes() []StoredNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

// Requests returns every call received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Calls counts the calls received for one action.
func (s *Server) Calls(action string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.requests {
		if r.Action == action {
			n++
		}
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, nil, "failed to decode request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)

	if msg, ok := s.failures[req.Action]; ok {
		writeEnvelope(w, nil, msg)
		return
	}

	switch req.Action {
	case "version":
		writeEnvelope(w, 6, "")
	case "deckNames":
		writeEnvelope(w, s.decks, "")
	case "findNotes":
		var params struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeEnvelope(w, nil, "invalid findNotes params")
			return
		}
		writeEnvelope(w, s.find(params.Query), "")
	case "addNote":
		var params struct {
			Note domain.Note `json:"note"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeEnvelope(w, nil, "invalid addNote params")
			return
		}
		if !slices.Contains(s.decks, params.Note.DeckName) {
			writeEnvelope(w, nil, "deck was not found: "+params.Note.DeckName)
			return
		}
		if s.duplicate(params.Note) {
			writeEnvelope(w, nil, "cannot create note because it is a duplicate")
			return
		}
		writeEnvelope(w, s.store(params.Note), "")
	default:
		writeEnvelope(w, nil, fmt.Sprintf("unsupported action: %s", req.Action))
	}
}

func (s *Server) store(note domain.Note) int64 {
	id := s.nextID
	s.nextID++
	s.notes = append(s.notes, StoredNote{ID: id, Note: note})
	return id
}

// find understands the deck:"..." and tag:... terms, joined by AND.
func (s *Server) find(query string) []int64 {
	ids := []int64{}
	terms := queryPattern.FindAllStringSubmatch(query, -1)

	for _, n := range s.notes {
		match := true
		for _, term := range terms {
			value := strings.Trim(term[2], `"`)
			switch term[1] {
			case "deck":
				match = match && strings.EqualFold(n.DeckName, value)
			case "tag":
				match = match && slices.ContainsFunc(n.Tags, func(t string) bool {
					return strings.EqualFold(t, value)
				})
			}
		}
		if match {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// duplicate reports an identical note already stored in the same deck.
func (s *Server) duplicate(note domain.Note) bool {
	return slices.ContainsFunc(s.notes, func(n StoredNote) bool {
		return n.DeckName == note.DeckName &&
			n.ModelName == note.ModelName &&
			maps.Equal(n.Fields, note.Fields)
	})
}

func writeEnvelope(w http.ResponseWriter, result any, errMsg string) {
	env := map[string]any{"result": result, "error": nil}
	if errMsg != "" {
		env["error"] = errMsg
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(env)
}
