// Package errors gives shelfgraph failures a machine-readable [Code].
//
// The CLI prints the code next to the message and the HTTP API maps it to a
// status, so callers branch on codes rather than on message text:
//
//	if errors.Is(err, errors.ErrCodeInsufficientStock) {
//		// reject the pick
//	}
//
// [Wrap] keeps the underlying cause reachable through the standard
// errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a failure.
type Code string

const (
	// The caller supplied something unusable.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidOrder  Code = "INVALID_ORDER"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// The request was well formed but the warehouse cannot satisfy it.
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	ErrCodeNoRoute           Code = "NO_ROUTE"

	// Bugs and missing features.
	ErrCodeInvariantViolation Code = "INVARIANT_VIOLATION"
	ErrCodeInternal           Code = "INTERNAL_ERROR"
	ErrCodeUnsupported        Code = "UNSUPPORTED"
)

// Error carries a Code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message: cause", leaving out empty parts.
func (e *Error) Error() string {
	s := string(e.Code)
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// outermost returns the first *Error in err's chain, or nil.
func outermost(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "" if
// there is none.
func GetCode(err error) Code {
	if e := outermost(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage returns err's text without the code prefix. An Error with no
// message falls back to its cause.
func UserMessage(err error) string {
	e := outermost(err)
	switch {
	case e == nil:
		return err.Error()
	case e.Message == "" && e.Cause != nil:
		return e.Cause.Error()
	default:
		return e.Message
	}
}
