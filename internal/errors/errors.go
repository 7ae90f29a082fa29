// Package errors defines the error kinds the board distinguishes between:
// rejected input, unknown records and storage faults. Handlers branch on the
// kind instead of inspecting message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindPersistence Kind = "persistence"
)

// Error is the structured error returned by the store and repository layers.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "posts.update".
	Op      string
	Message string
	// Messages holds the ordered, user-facing validation messages.
	Messages []string
	Cause    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case len(e.Messages) > 0:
		b.WriteString(strings.Join(e.Messages, "; "))
	default:
		b.WriteString(string(e.Kind))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so the sentinels
// below match any error of their kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrPersistence = &Error{Kind: KindPersistence}
)

// Validation reports rejected input with the messages to show the user.
func Validation(op string, messages []string) *Error {
	return &Error{Kind: KindValidation, Op: op, Messages: messages}
}

// NotFound reports that no record has the given id.
func NotFound(op, id string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf("record %q not found", id)}
}

// Persistence wraps a storage fault.
func Persistence(op string, cause error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Message: "storage failure", Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there
// is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Messages returns the validation messages carried by err, if any.
func Messages(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Messages
	}
	return nil
}
