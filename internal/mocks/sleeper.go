package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/scry-anki/internal/batch"
)

var _ batch.Sleeper = (*RecordingSleeper)(nil)

// RecordingSleeper records requested pauses instead of sleeping.
type RecordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration

	// OnSleep, when set, runs on every call; tests use it to observe ordering.
	OnSleep func()
}

// Sleep records d and returns immediately.
func (s *RecordingSleeper) Sleep(ctx context.Context, d time.Duration) {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()

	if s.OnSleep != nil {
		s.OnSleep()
	}
}

// Delays returns the recorded durations.
func (s *RecordingSleeper) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}
