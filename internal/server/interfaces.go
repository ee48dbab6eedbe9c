package server

import "context"

// Server defines the lifecycle contract of the transport server.
//
// RunServer blocks until a termination signal arrives and the server has
// drained. Run does the same but stops when ctx is cancelled, which lets
// callers embed the server in their own lifecycle.
type Server interface {
	// RunServer starts serving requests and blocks until SIGINT, SIGTERM
	// or SIGQUIT is received and in-flight requests are finished.
	RunServer()

	// Run serves until ctx is done, then shuts down gracefully.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
