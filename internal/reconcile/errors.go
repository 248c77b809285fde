package reconcile

import "errors"

// ValidationError is a user-facing precondition failure caught before any
// network call. Handlers render it inline and never log it as a system error.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// ErrSuperseded means a newer reconciliation (or a logout/unmount) started
// while this one was in flight; its responses were discarded and the visible
// state belongs to the newer request.
var ErrSuperseded = errors.New("reconciliation superseded by a newer request")
