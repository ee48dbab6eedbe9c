// Package server runs the HTTP transport of the request pipeline.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown bounded by the configured timeout.
package server
