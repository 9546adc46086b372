package stats

import "errors"

// Sentinel kinds for input validation. Callers match with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid raw stats")
)
