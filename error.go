package pagesum

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID    = "invalid"
	EBADURL     = "bad_url"
	ETIMEOUT    = "timeout"
	ECONNECTION = "connection"
	EHTTP       = "http"
	ESCRAPE     = "scrape"
	ENOSUMMARY  = "no_summary"
	ESUMMARIZE  = "summarize"
	EINTERNAL   = "internal"
)

// Error represents an application-specific error. Message is safe to show
// to API callers.
type Error struct {
	Code    string
	Message string

	// Status is the upstream HTTP status code for EHTTP errors.
	Status int
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("pagesum error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// HTTPError returns an EHTTP error for an upstream status code.
func HTTPError(status int) *Error {
	return &Error{
		Code:    EHTTP,
		Message: fmt.Sprintf("HTTP error: %d", status),
		Status:  status,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal server error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// ErrorStatus returns the upstream HTTP status of an EHTTP error, or 0.
func ErrorStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
