package cli

import "errors"

// errUsage is returned when alfred is invoked without an event name.
var errUsage = errors.New("usage: alfred <event>")

// SilentError wraps an error whose diagnostic has already been written.
// main exits non-zero without printing it again.
type SilentError struct {
	err error
}

// NewSilentError marks err as already reported.
func NewSilentError(err error) *SilentError {
	return &SilentError{err: err}
}

func (e *SilentError) Error() string {
	return e.err.Error()
}

func (e *SilentError) Unwrap() error {
	return e.err
}
