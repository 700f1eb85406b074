package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown Code = "unknown"

	// Remote failures, one per tier: the request never completed, the server
	// answered with a non-2xx status, or a 2xx body carried an error field.
	CodeTransport   Code = "transport"
	CodeHTTPStatus  Code = "http_status"
	CodeApplication Code = "application"
	CodeParseFailed Code = "parse_failed"
	CodeNotFound    Code = "not_found"

	// Domain/input errors
	CodeInvalidStatus      Code = "invalid_status"
	CodeInvalidArgument    Code = "invalid_argument"
	CodeConfigurationError Code = "configuration_error"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsRemote reports whether err came from talking to the review server.
func IsRemote(err error) bool {
	switch CodeOf(err) {
	case CodeTransport, CodeHTTPStatus, CodeApplication, CodeNotFound:
		return true
	}
	return false
}
