package quote

import "errors"

// ValidationError marks input the caller has to fix. It is never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var (
	ErrNoItems  = &ValidationError{Msg: "no items provided"}
	ErrNotFound = errors.New("quote not found")
)

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
