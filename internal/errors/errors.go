// Package errors defines the structured error type tally reports to users.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig        = "CONFIG"        // bad or missing configuration
	ErrStore         = "STORE"         // graph file I/O
	ErrNotFound      = "NOT_FOUND"     // missing page or node
	ErrParse         = "PARSE"         // unreadable entry, date or value
	ErrCreate        = "CREATE"        // a node or page could not be created
	ErrVisualization = "VISUALIZATION" // unknown type or failed render
)

// Error is a failure with a code, a one-line message, and an optional
// suggestion and cause. It renders as:
//
//	✗ <message>
//
//	  <cause>
//
//	  <suggestion>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates an error without a cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// Wrap attaches a message to err. Most wrapped causes are file I/O, so the
// code is ErrStore.
func Wrap(err error, message string) *Error {
	return &Error{Code: ErrStore, Message: message, Cause: err}
}

// WrapWithCode attaches a code, message and suggestion to err.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

// NotFound reports a missing page or node. what names it, e.g. `Page "x"`.
func NotFound(what string) *Error {
	return New(ErrNotFound, what+" not found", "")
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✗ %s\n", e.Message)
	for _, detail := range []string{causeText(e.Cause), e.Suggestion} {
		if detail != "" {
			fmt.Fprintf(&b, "\n  %s\n", detail)
		}
	}
	return b.String()
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Unwrap returns the cause for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var tErr *Error
	if err != nil && errors.As(err, &tErr) {
		return tErr.Code
	}
	return ""
}

// IsCode reports whether err's chain holds an *Error with code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// IsNotFound reports whether err carries the ErrNotFound code.
func IsNotFound(err error) bool {
	return IsCode(err, ErrNotFound)
}
