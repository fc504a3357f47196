package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Test with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")
	ErrConstraint = errors.New("constraint violation")
)

// Error is a classified error whose message is safe to show to the caller.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) UserMessage() string {
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing row, e.g. NotFound("Outing") -> "Outing not found".
func NotFound(entity string) error {
	return &Error{Kind: ErrNotFound, Msg: entity + " not found"}
}

// Constraint wraps a database integrity failure, surfacing the driver message.
func Constraint(err error) error {
	return &Error{Kind: ErrConstraint, Msg: err.Error(), Err: err}
}

// Message returns the user-facing message of the first error in err's chain
// that carries one, falling back to err.Error().
func Message(err error) string {
	var m interface{ UserMessage() string }
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return err.Error()
}
