package models

import (
	"net/http"
	"net/url"
)

// RequestContext is the per-request record shared by every stage of the
// request pipeline.
//
// It is created by the request-id middleware at ingress, enriched by the
// body-parsing and authentication middlewares, and read by the request
// logger, the error logger and the terminal error handler. The record is
// discarded together with the request.
//
// Values are stored raw. Anything taken from Header, Query or Body must be
// passed through the sanitizer before it is logged.
type RequestContext struct {
	// RequestID is the correlation identifier assigned at ingress.
	// It never changes after the record is created.
	RequestID string

	// Method is the HTTP method of the request.
	Method string

	// URL is the original request URI including the query string.
	URL string

	// ClientIP is the address of the client without the port.
	ClientIP string

	// UserAgent is the value of the "User-Agent" header.
	UserAgent string

	// Header holds the inbound request headers.
	Header http.Header

	// Query holds the parsed query string.
	Query url.Values

	// Body holds the decoded request body: a JSON value for JSON requests,
	// url.Values for url-encoded forms, nil otherwise.
	Body any

	// User is the authenticated user, nil for anonymous requests.
	User *User
}
