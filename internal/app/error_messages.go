// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// request pipeline: client-facing messages and machine-readable error codes.
//
// All Msg* constants are human-readable strings that are written into HTTP
// response bodies or log entries. All Code* constants end up in the "code"
// field of the error response body. Keeping them in one place ensures
// consistent wording throughout the API.
package app

const (
	// MsgInternalServerError replaces the message of an unexpected error in
	// production so that internal details never reach the client.
	MsgInternalServerError = "Something went very wrong!"

	// MsgRouteNotFound is a format string for the catch-all route handler.
	// The single verb receives the original request URL.
	MsgRouteNotFound = "Can't find %s on this server!"

	// MsgMethodNotAllowed is a format string used when the path exists but
	// the method is not registered for it. Receives method and URL.
	MsgMethodNotAllowed = "Method %s is not allowed for %s"

	// MsgInvalidJSONBody is returned when a request declares a JSON body that
	// cannot be decoded.
	MsgInvalidJSONBody = "invalid JSON body"

	// MsgInvalidFormBody is returned when a url-encoded body cannot be parsed.
	MsgInvalidFormBody = "invalid form body"

	// MsgPayloadTooLarge is returned when the body exceeds the configured limit.
	MsgPayloadTooLarge = "request entity too large"

	// MsgUnreadableBody is returned when the body stream fails mid-read.
	MsgUnreadableBody = "request body could not be read"

	// MsgInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a bearer token.
	MsgInvalidAuthorizationHeader = "invalid `Authorization` header"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is either
	// expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgCaughtAsyncError is the log message of the capture wrapper.
	MsgCaughtAsyncError = "Caught async error"

	// MsgErrorOccurred is the log message of the error logger.
	MsgErrorOccurred = "Error occurred"

	// MsgIncomingRequest is the log message of the ingress logger.
	MsgIncomingRequest = "Incoming request"

	// MsgRequestCompleted is the log message of the performance logger.
	MsgRequestCompleted = "Request completed"
)

const (
	// CodeUnknownError is logged when an error carries no machine code.
	CodeUnknownError     = "UNKNOWN_ERROR"
	CodeRouteNotFound    = "ROUTE_NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeInvalidForm      = "INVALID_FORM"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
)
