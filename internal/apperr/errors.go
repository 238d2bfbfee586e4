// Package apperr defines the typed errors raised by services and the mapper
// that turns them into the JSON error envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindServer     Kind = "server"
)

// statusByKind is the HTTP status carried by each kind.
// Conflicts are reported as 400, like every other input problem.
var statusByKind = map[Kind]int{
	KindValidation: http.StatusBadRequest,
	KindAuth:       http.StatusUnauthorized,
	KindForbidden:  http.StatusForbidden,
	KindConflict:   http.StatusBadRequest,
	KindNotFound:   http.StatusNotFound,
	KindServer:     http.StatusInternalServerError,
}

const maxStackDepth = 32

// Error is a tagged error carrying its kind, HTTP status and a
// caller-facing message. The wrapped cause is never shown to callers.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error

	stack []uintptr
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StackTrace renders the call stack captured when the error was created.
func (e *Error) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}
	frames := runtime.CallersFrames(e.stack)
	var b strings.Builder
	b.WriteString("Error: " + e.Message)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "\n    at %s (%s:%d)", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}
	return b.String()
}

func newError(kind Kind, msg string, cause error) *Error {
	pcs := make([]uintptr, maxStackDepth)
	// skip runtime.Callers, newError and the exported constructor
	n := runtime.Callers(3, pcs)
	return &Error{
		Kind:    kind,
		Status:  statusByKind[kind],
		Message: msg,
		Err:     cause,
		stack:   pcs[:n],
	}
}

func Validation(msg string) *Error { return newError(KindValidation, msg, nil) }

func Unauthorized(msg string) *Error { return newError(KindAuth, msg, nil) }

func Forbidden(msg string) *Error { return newError(KindForbidden, msg, nil) }

func Conflict(msg string) *Error { return newError(KindConflict, msg, nil) }

func NotFound(msg string) *Error { return newError(KindNotFound, msg, nil) }

// Server wraps an unexpected failure, typically from the store.
func Server(msg string, cause error) *Error { return newError(KindServer, msg, cause) }

// Wrap attaches a cause to a kind with a custom message.
func Wrap(kind Kind, msg string, cause error) *Error { return newError(kind, msg, cause) }

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// StatusOf returns the HTTP status attached to err, or 0 if it carries none.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.Status
	}
	return 0
}
