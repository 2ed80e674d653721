// Package domainerrors provides coded domain errors shared by services and the
// HTTP transport. Services wrap infrastructure sentinels into coded errors;
// the transport maps codes to status lines without ever leaking internal
// detail for not_found or unavailable conditions.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error. The set mirrors the error taxonomy of the
// payment core: not_found and unavailable are deliberately opaque, rejected
// carries a specific machine-readable reason, timeout marks an exceeded
// collaborator bound. None of them are retried internally.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeRejected     Code = "rejected"
	CodeUnavailable  Code = "unavailable"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal"
)

// Error is a coded domain error. Message is safe to surface for rejected and
// bad_request codes; for not_found and unavailable the transport discards it.
type Error struct {
	Code    Code
	Message string
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// New creates a coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message while preserving the chain.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, wrapped: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to internal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HTTPStatus maps a code to its HTTP status. Rejected maps to 400 so LNURL
// wallets treat the reason as a terminal caller error, not a server fault.
func HTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeRejected:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
