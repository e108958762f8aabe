package lcp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusNone is the Status of an Error raised before, or without, an HTTP response.
const StatusNone = 0

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrMissingParameter  = errors.New("missing parameter")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrTransport         = errors.New("transport error")
	ErrServiceError      = errors.New("service error")
	ErrParse             = errors.New("parse error")
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired                 = errors.New("config is required")
	ErrInstanceRequired               = errors.New("instance is required")
	ErrInvalidConnectionLimit         = errors.New("connection limit must be greater than zero")
	ErrInvalidConnectionLimitPeriod   = errors.New("connection limit period must be greater than zero")
	ErrConnectionLimitPeriodPrecision = errors.New("connection limit period must be a whole number of milliseconds")
	ErrInvalidProxy                   = errors.New("invalid proxy configuration")
	ErrInvalidRetryConfig             = errors.New("retry settings must not be negative")
	ErrUnknownLimitStrategy           = errors.New("unknown limit strategy")
	ErrInvalidParams                  = errors.New("params must encode to a JSON object")
	ErrUnknownOperation               = errors.New("unknown operation")
	ErrUnsupportedConfigEncoding      = errors.New("config must be a JSON object or a JSON string holding one")
	ErrBatchFailed                    = errors.New("batch operations failed")
)

// Error is the normalized failure of a single call.
type Error struct {
	// Kind is one of ErrConfiguration, ErrMissingParameter, ErrRateLimitExceeded,
	// ErrTransport, ErrServiceError or ErrParse.
	Kind error
	// Operation is the descriptor name, e.g. "getRecords".
	Operation string
	// Sequence is the client-local number of the originating request.
	Sequence uint64
	// Status is the HTTP status, or StatusNone when no response was received.
	Status int
	// Message is the Service's message when present, otherwise a local description.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	kind := "error"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}

	sb.WriteString(kind)

	if e.Status != StatusNone {
		fmt.Fprintf(&sb, " (status %d)", e.Status)
	}

	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	} else if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	if e.Operation != "" || e.Sequence != 0 {
		fmt.Fprintf(&sb, " [%s #%d]", e.Operation, e.Sequence)
	}

	return sb.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// NewError builds an *Error of the given kind.
func NewError(kind error, operation string, sequence uint64, status int, message string, cause error) *Error {
	return &Error{
		Kind:      kind,
		Operation: operation,
		Sequence:  sequence,
		Status:    status,
		Message:   message,
		Err:       cause,
	}
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	lcpErr := &Error{}
	if errors.As(err, &lcpErr) {
		return lcpErr, true
	}

	return nil, false
}

// StatusOf returns the HTTP status carried by err, or StatusNone.
func StatusOf(err error) int {
	if lcpErr, ok := AsError(err); ok {
		return lcpErr.Status
	}

	return StatusNone
}

// SequenceOf returns the request sequence number carried by err, or 0.
func SequenceOf(err error) uint64 {
	if lcpErr, ok := AsError(err); ok {
		return lcpErr.Sequence
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrServiceError) && StatusOf(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrServiceError) && StatusOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrServiceError) && StatusOf(err) == http.StatusForbidden
}

// IsRateLimited reports whether the call was refused by the local limiter or
// by the Service itself.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimitExceeded) {
		return true
	}

	return errors.Is(err, ErrServiceError) && StatusOf(err) == http.StatusTooManyRequests
}
