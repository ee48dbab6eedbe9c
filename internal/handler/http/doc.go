// Package http implements the HTTP transport layer of the application.
//
// It wires the request pipeline around the router: CORS, correlation ids,
// performance and ingress logging, panic recovery, body parsing and
// optional bearer authentication. Failures are never written by the stage
// that observes them. They are forwarded to the error pipeline, an error
// logger followed by a single terminal handler that produces the client
// response. Route handlers return errors and are mounted with
// [Handler.Catch].
package http
