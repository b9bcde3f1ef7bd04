// Package apperr is the error taxonomy shared by all services.
// Handlers classify an error by Kind and pick the response once,
// instead of each route inventing its own mapping.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota // unexpected DB/filesystem fault
	Validation           // bad input shape
	Conflict             // uniqueness violation
	Auth                 // bad credentials
	NotFound
)

type Error struct {
	Kind Kind
	Msg  string // safe to show to the user
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...any) error {
	return &Error{Kind: Validation, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: Conflict, Msg: fmt.Sprintf(format, args...)}
}

func Authf(format string, args ...any) error {
	return &Error{Kind: Auth, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

// Wrap marks err as an internal fault with a user-safe message.
func Wrap(err error, msg string) error {
	return &Error{Kind: Internal, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or Internal for anything untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the user-safe message of err. Untyped errors get a
// generic message so internals never leak into a page.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "something went wrong"
}
