package batch

import "errors"

var (
	// ErrInputUnavailable is returned when the phrase file cannot be read.
	// No store or model call happens in that case.
	ErrInputUnavailable = errors.New("input file unavailable")

	// ErrInputUnreadable is returned when the phrase file opens but its
	// content cannot be scanned, for example a line over the 1 MiB limit.
	ErrInputUnreadable = errors.New("input file unreadable")

	ErrNilChecker   = errors.New("checker cannot be nil")
	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilSubmitter = errors.New("submitter cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
)
