package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers can decide between skip, retry and abort
type Kind string

const (
	// Run-level kinds
	KindAuth      Kind = "auth"
	KindPageFetch Kind = "page_fetch"
	KindEntry     Kind = "entry"
	KindExport    Kind = "export"
	KindConfig    Kind = "config"
	KindFatal     Kind = "fatal"

	// Transport-level kinds
	KindNetwork     Kind = "network"
	KindRateLimit   Kind = "rate_limit"
	KindParsing     Kind = "parsing"
	KindNotFound    Kind = "not_found"
	KindServerError Kind = "server_error"
	KindUnknown     Kind = "unknown"
)

// Error is a typed failure carrying the operation that produced it
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	prefix := string(e.Kind)
	if e.Op != "" {
		prefix = e.Op + ": " + prefix
	}
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", prefix, e.Code, msg)
	}
	return fmt.Sprintf("%s error: %s", prefix, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap attaches a kind and operation to an underlying error. The status code
// of a wrapped *Error is carried over.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	e := &Error{Kind: kind, Op: op, Err: err}
	var inner *Error
	if stderrors.As(err, &inner) {
		e.Code = inner.Code
	}
	return e
}

// FromStatus maps an HTTP status code to a typed error. It returns nil for 2xx/3xx.
func FromStatus(op string, status int) *Error {
	if status >= 200 && status < 400 {
		return nil
	}

	e := &Error{Op: op, Code: status, Message: http.StatusText(status)}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.Message = "rate limited by remote service"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuth
		e.Message = "session is not authorized"
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 500:
		e.Kind = KindServerError
	default:
		e.Kind = KindUnknown
	}
	return e
}

// KindOf returns the kind of the first *Error in the chain, or KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether any *Error in the chain has the given kind
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// IsRetryable checks if an error kind should be retried
func IsRetryable(kind Kind) bool {
	switch kind {
	case KindNetwork, KindRateLimit, KindServerError:
		return true
	default:
		return false
	}
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable error
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429:
		return true
	case 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}
