// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, request
// identifiers, HTTP response writing, HTTP client initialization,
// JWT token generation and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-request-pipeline/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// RequestIDCtxKey is the key under which the correlation id of the
	// current request is stored. Errors constructed with this context pick
	// the id up automatically.
	RequestIDCtxKey = contextKey("requestID")

	// UserIDCtxKey is the key used to store the authenticated user identifier.
	UserIDCtxKey = contextKey("userID")

	// RequestCtxKey is the key of the per-request [models.RequestContext].
	RequestCtxKey = contextKey("request")
)

// WithRequestID returns a copy of ctx carrying the correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, requestID)
}

// GetRequestIDFromContext retrieves the correlation id from the context.
//
// Returns ok == false when the value is missing, empty or has an
// unexpected type.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	requestID, ok := ctx.Value(RequestIDCtxKey).(string)
	return requestID, ok && requestID != ""
}

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true: value is found and has the correct int64 type
//   - ok == false: value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithRequest returns a copy of ctx carrying the request record.
func WithRequest(ctx context.Context, rc *models.RequestContext) context.Context {
	return context.WithValue(ctx, RequestCtxKey, rc)
}

// GetRequestFromContext retrieves the request record stored by the
// request-id middleware.
func GetRequestFromContext(ctx context.Context) (*models.RequestContext, bool) {
	rc, ok := ctx.Value(RequestCtxKey).(*models.RequestContext)
	return rc, ok && rc != nil
}
