package raas

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALIDURL       = "invalid_url"
	EINVALIDENDPOINT  = "invalid_endpoint_url"
	EINVALIDMETHOD    = "invalid_http_method"
	EBADREQUEST       = "bad_request"
	EINTERNAL         = "internal_server_error"
	EUNEXPECTEDSTATUS = "unexpected_status_code"
	EMALFORMED        = "malformed_response"
)

// Error represents an application-specific error. Errors raised by the
// transport are not wrapped in Error and report an empty code.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable detail. For EBADREQUEST this is the service's own
	// message; for EUNEXPECTEDSTATUS it is the status code.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("raas error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Returns an empty string for nil and for errors that are not *Error.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return their full error string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
