// Package apperr defines the error kinds shared by every workflow so the
// transport layer can map failures to distinct responses.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindForbidden Kind = iota + 1
	KindInvalidInput
	KindNotFound
	KindInvalidState
)

// Sentinels for errors.Is matching across package boundaries.
var (
	ErrForbidden    = &Error{kind: KindForbidden, message: "forbidden"}
	ErrInvalidInput = &Error{kind: KindInvalidInput, message: "invalid input"}
	ErrNotFound     = &Error{kind: KindNotFound, message: "not found"}
	ErrInvalidState = &Error{kind: KindInvalidState, message: "invalid state"}
)

type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Is matches any error of the same kind, so callers can write
// errors.Is(err, apperr.ErrInvalidState) regardless of the message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.kind == other.kind
}

func Forbidden(message string) error {
	return &Error{kind: KindForbidden, message: message}
}

func Forbiddenf(format string, args ...any) error {
	return Forbidden(fmt.Sprintf(format, args...))
}

func InvalidInput(message string) error {
	return &Error{kind: KindInvalidInput, message: message}
}

func InvalidInputf(format string, args ...any) error {
	return InvalidInput(fmt.Sprintf(format, args...))
}

func NotFound(message string) error {
	return &Error{kind: KindNotFound, message: message}
}

func InvalidState(message string) error {
	return &Error{kind: KindInvalidState, message: message}
}

// KindOf returns the kind of err, or zero if err is not an apperr.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}
