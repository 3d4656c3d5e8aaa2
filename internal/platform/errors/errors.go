// Package errors is the structured error type shared by every draftdesk layer
//
// Import it as perr. Handlers return these and the envelope writer turns the
// code into an HTTP status plus a Wire body.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing class of an error
// The numeric values are on the wire, append new codes at the end
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota // unclassified
	ErrorCodePanic                            // recovered by RecoverJSON
	ErrorCodeUnavailable                      // llm upstream or postgres, may come back
	ErrorCodeTooManyRequests                  // upstream or local rate limit
	ErrorCodeConflict                         // does not fit the current state
	ErrorCodeInvalidArgument                  // well formed, bad values
	ErrorCodeValidation                       // failed validator tags
	ErrorCodeJSON                             // body does not decode
	ErrorCodeNotFound                         // container, route or resource
	ErrorCodeDB                               // any other database failure
)

type codeInfo struct {
	name   string
	status int
}

var codeTable = [...]codeInfo{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests: {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeConflict:        {"conflict", http.StatusConflict},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
}

func (c ErrorCode) info() codeInfo {
	if int(c) < len(codeTable) {
		return codeTable[c]
	}
	return codeInfo{fmt.Sprintf("code(%d)", uint16(c)), http.StatusInternalServerError}
}

// String is the log name of c
func (c ErrorCode) String() string { return c.info().name }

// HTTPStatusCode maps a code to its response status, 500 when unmapped
func HTTPStatusCode(c ErrorCode) int { return c.info().status }

// ErrNotFound is the shared not found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a message for humans, an optional request field and the cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

// Wire is the JSON body written for an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field is the offending request field, empty when none
func (e *Error) Field() string { return e.field }

// WireFrom renders any error for the envelope, foreign errors become Unknown
func WireFrom(err error) Wire {
	switch e, ok := As(err); {
	case err == nil:
		return Wire{}
	case ok:
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	default:
		return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	}
}

// Root is the innermost cause of err
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// As finds the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is the code of the outermost *Error, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the response status for err
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy of err pointing at a request field
// errors that are not ours come back unchanged
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	tagged := *e
	tagged.field = field
	return &tagged
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap attaches code and msg to cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// shorthands for the codes handlers return most

func NotFoundf(format string, a ...any) error    { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error  { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
