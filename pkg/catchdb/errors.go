package catchdb

import (
	"errors"
	"fmt"
)

// Error is a client error carrying a stable code.
//
// Two errors compare equal under errors.Is when their codes match, so
// callers test against the exported sentinels:
//
//	if errors.Is(err, catchdb.ErrPeerClosed) { ... }
type Error struct {
	Code    string // e.g. "CDB-CONN-5004"
	Message string
	Details string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates an Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// Wrap returns a copy of the error wrapping cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// ErrorCode extracts the code from err, or "" if err is not an *Error.
func ErrorCode(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// Connection errors.
var (
	// ErrSocketCreateFailed indicates the local socket could not be created.
	ErrSocketCreateFailed = NewError("CDB-CONN-5001", "socket create failed")

	// ErrConnectFailed indicates name resolution or connect failed.
	ErrConnectFailed = NewError("CDB-CONN-5002", "connect failed")

	// ErrTransport indicates a read or write failure on an open connection.
	// The connection is closed afterwards.
	ErrTransport = NewError("CDB-CONN-5003", "transport error")

	// ErrPeerClosed indicates the server closed the connection before replying.
	ErrPeerClosed = NewError("CDB-CONN-5004", "connection closed by peer")

	// ErrClosed indicates use of a connection after Close.
	ErrClosed = NewError("CDB-CONN-5005", "connection is closed")
)

// Argument errors, detected before any I/O.
var (
	ErrEmptyCommand   = NewError("CDB-ARG-4001", "empty command")
	ErrUnknownCommand = NewError("CDB-ARG-4002", "unknown command")
	ErrWrongArity     = NewError("CDB-ARG-4003", "wrong number of arguments")
)

// Reply errors, mapped from the reply status word by the typed API.
var (
	ErrNotFound    = NewError("CDB-REPLY-4040", "not found")
	ErrClientError = NewError("CDB-REPLY-4000", "client error")
	ErrServerError = NewError("CDB-REPLY-5000", "server error")
	ErrServerFail  = NewError("CDB-REPLY-5001", "server failure")
	ErrBadReply    = NewError("CDB-REPLY-5002", "unexpected reply")
)
