package ankiconnect

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable is returned when the request never produced an envelope:
	// connection refused, timeout, or a non-200 HTTP status.
	ErrUnreachable = errors.New("anki store unreachable")

	// ErrStoreRejected is returned when the envelope carries a non-null error.
	ErrStoreRejected = errors.New("anki store rejected request")

	// ErrInvalidResponse is returned when the reply body is not a valid envelope.
	ErrInvalidResponse = errors.New("invalid anki store response")
)

// StoreError carries the error text reported by AnkiConnect.
type StoreError struct {
	Action  string
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStoreRejected.Error(), e.Action, e.Message)
}

// Unwrap lets errors.Is match ErrStoreRejected.
func (e *StoreError) Unwrap() error {
	return ErrStoreRejected
}
