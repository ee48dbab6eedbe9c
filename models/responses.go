package models

// ErrorResponse is the canonical structured form of an application error.
//
// The same shape is written to the client by the terminal error handler and
// used when an error is serialized for logging. Every field is always
// present: Code and RequestID are encoded as null when absent so that
// consumers can rely on a stable set of keys.
type ErrorResponse struct {
	// Message is the human-readable description of the error.
	Message string `json:"message"`

	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"statusCode"`

	// Status is "fail" for 4xx status codes and "error" otherwise.
	Status string `json:"status"`

	// Code is the optional machine-readable error code.
	Code *string `json:"code"`

	// Timestamp is the creation time of the error in RFC 3339 format with
	// millisecond precision (UTC).
	Timestamp string `json:"timestamp"`

	// RequestID is the correlation identifier of the originating request.
	RequestID *string `json:"requestId"`

	// IsOperational reports whether the error is an anticipated condition.
	IsOperational bool `json:"isOperational"`

	// Stack is only populated outside production. It is omitted otherwise.
	Stack string `json:"stack,omitempty"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
