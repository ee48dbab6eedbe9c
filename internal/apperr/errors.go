package apperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-request-pipeline/internal/utils"
	"github.com/MKhiriev/go-request-pipeline/models"
)

// TimestampFormat is the layout of [Error.Timestamp] in serialized form.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Status classes derived from the status code.
const (
	StatusFail  = "fail"
	StatusError = "error"
)

// Kind separates anticipated errors from faults.
type Kind int

const (
	KindUnexpected Kind = iota
	KindOperational
)

func (k Kind) String() string {
	if k == KindOperational {
		return "operational"
	}
	return "unexpected"
}

// Error is an application error with an HTTP classification.
//
// Fields are read-only after construction; the only permitted change is a
// one-time correlation id backfill via [Error.BackfillRequestID].
type Error struct {
	message     string
	statusCode  int
	status      string
	operational bool
	code        string
	timestamp   time.Time
	requestID   string
	stack       string
	cause       error
}

// Option customizes an Error at construction time.
type Option func(*Error)

// WithCode attaches a machine-readable error code.
func WithCode(code string) Option {
	return func(e *Error) {
		e.code = code
	}
}

// WithCause records the underlying error. It is reachable via errors.Unwrap
// and logged, but never sent to the client.
func WithCause(err error) Option {
	return func(e *Error) {
		e.cause = err
	}
}

// New constructs an operational error.
//
// The status class is derived from statusCode, the timestamp is the current
// time, and the correlation id is copied from ctx when present.
func New(ctx context.Context, message string, statusCode int, opts ...Option) *Error {
	e := newError(ctx, message, statusCode, true)
	e.stack = captureStack(3)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func newError(ctx context.Context, message string, statusCode int, operational bool) *Error {
	e := &Error{
		message:     message,
		statusCode:  statusCode,
		status:      StatusClass(statusCode),
		operational: operational,
		timestamp:   time.Now().UTC(),
	}
	if requestID, ok := utils.GetRequestIDFromContext(ctx); ok {
		e.requestID = requestID
	}
	return e
}

// StatusClass returns "fail" when the leading digit of statusCode is 4 and
// "error" otherwise.
func StatusClass(statusCode int) string {
	if strings.HasPrefix(strconv.Itoa(statusCode), "4") {
		return StatusFail
	}
	return StatusError
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Accessors.

func (e *Error) Message() string { return e.message }
func (e *Error) StatusCode() int { return e.statusCode }
func (e *Error) Status() string { return e.status }
func (e *Error) Code() string { return e.code }
func (e *Error) Timestamp() time.Time { return e.timestamp }
func (e *Error) RequestID() string { return e.requestID }
func (e *Error) Stack() string { return e.stack }
func (e *Error) IsOperational() bool { return e.operational }

// Kind reports whether the error is operational or unexpected.
func (e *Error) Kind() Kind {
	if e.operational {
		return KindOperational
	}
	return KindUnexpected
}

// HTTPStatus returns the status code to respond with. Codes outside the
// valid HTTP range are replaced with 500.
func (e *Error) HTTPStatus() int {
	if e.statusCode < 100 || e.statusCode > 599 {
		return http.StatusInternalServerError
	}
	return e.statusCode
}

// BackfillRequestID sets the correlation id if none was captured at
// construction. An existing id is never replaced.
func (e *Error) BackfillRequestID(requestID string) {
	if e.requestID == "" {
		e.requestID = requestID
	}
}

// Response returns the canonical structured form of the error.
func (e *Error) Response() models.ErrorResponse {
	resp := models.ErrorResponse{
		Message:       e.message,
		StatusCode:    e.statusCode,
		Status:        e.status,
		Timestamp:     e.timestamp.Format(TimestampFormat),
		IsOperational: e.operational,
	}
	if e.code != "" {
		code := e.code
		resp.Code = &code
	}
	if e.requestID != "" {
		requestID := e.requestID
		resp.RequestID = &requestID
	}
	return resp
}

// MarshalJSON encodes the canonical structured form.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Response())
}

// Classify converts any error into an *Error.
//
// An *Error anywhere in the chain is returned as is. Anything else becomes
// an unexpected error with status 500, carrying err as its cause and the
// message of err for the logs.
func Classify(ctx context.Context, err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	e := newError(ctx, err.Error(), http.StatusInternalServerError, false)
	e.cause = err
	e.stack = captureStack(3)
	return e
}

// FromPanic converts a recovered panic value into an unexpected error.
// stack is the goroutine stack captured in the deferred recover.
func FromPanic(ctx context.Context, recovered any, stack []byte) *Error {
	if err, ok := recovered.(error); ok {
		var appErr *Error
		if errors.As(err, &appErr) {
			return appErr
		}
	}
	e := newError(ctx, fmt.Sprintf("panic: %v", recovered), http.StatusInternalServerError, false)
	if err, ok := recovered.(error); ok {
		e.cause = err
	}
	e.stack = string(stack)
	return e
}

// Name returns a short type name for err, used in log records.
func Name(err error) string {
	if _, ok := err.(*Error); ok {
		return "AppError"
	}
	return fmt.Sprintf("%T", err)
}
