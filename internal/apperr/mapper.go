package apperr

import (
	"fmt"
	"net/http"
)

// Titles for the statuses the mapper knows about.
const (
	TitleValidation   = "Validation Error"
	TitleUnauthorized = "Unauthorized"
	TitleForbidden    = "Forbidden"
	TitleNotFound     = "Not Found"
	TitleServer       = "Server Error"
	TitleUnknown      = "Unknown Error"
)

// Envelope is the uniform JSON body of every failed request.
type Envelope struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
}

// Title returns the envelope title for status and the status that must be
// written. Unknown, unset and success statuses collapse to 500.
func Title(status int) (string, int) {
	switch status {
	case http.StatusBadRequest:
		return TitleValidation, status
	case http.StatusUnauthorized:
		return TitleUnauthorized, status
	case http.StatusForbidden:
		return TitleForbidden, status
	case http.StatusNotFound:
		return TitleNotFound, status
	case http.StatusInternalServerError:
		return TitleServer, status
	default:
		return TitleUnknown, http.StatusInternalServerError
	}
}

// Map builds the envelope for err raised while status was in effect and
// returns the status to write. withStack controls the diagnostic trace.
func Map(err error, status int, withStack bool) (Envelope, int) {
	title, code := Title(status)
	env := Envelope{Title: title, Message: message(err)}
	if withStack {
		env.StackTrace = stackOf(err)
	}
	return env, code
}

func message(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok {
		return e.Message
	}
	return err.Error()
}

func stackOf(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok {
		if st := e.StackTrace(); st != "" {
			return st
		}
	}
	return fmt.Sprintf("Error: %v", err)
}
