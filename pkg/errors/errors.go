// Package errors provides the two failure kinds the client distinguishes.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindTransport covers unreachable backends, non-2xx responses and malformed bodies.
	KindTransport Kind = iota + 1
	// KindValidation covers local input rejection; it never reaches the network.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error codes
const (
	CodeNetworkUnreachable = "NETWORK_UNREACHABLE"
	CodeBadStatus          = "BAD_STATUS"
	CodeMalformedJSON      = "MALFORMED_JSON"

	CodeNoDish           = "NO_DISH"
	CodeUnknownDish      = "UNKNOWN_DISH"
	CodeBackendOffline   = "BACKEND_OFFLINE"
	CodeMissingPrice     = "MISSING_PRICE"
	CodeInvalidPrice     = "INVALID_PRICE"
	CodeNonPositivePrice = "NON_POSITIVE_PRICE"
)

// Error is a classified failure with a stable code.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Op      string `json:"op,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Kind, e.Code, e.Message)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewTransport wraps a network-level failure of op.
func NewTransport(op, code string, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Code:    code,
		Message: "backend unavailable",
		Op:      op,
		Err:     err,
	}
}

// NewBadStatus reports a non-success HTTP status from op.
func NewBadStatus(op string, status int, body string) *Error {
	msg := fmt.Sprintf("unexpected status %d", status)
	if body != "" {
		msg += " (" + body + ")"
	}
	return &Error{
		Kind:    KindTransport,
		Code:    CodeBadStatus,
		Message: msg,
		Op:      op,
	}
}

// NewValidation rejects user input locally.
func NewValidation(code, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    code,
		Message: message,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsTransport(err error) bool  { return KindOf(err) == KindTransport }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
