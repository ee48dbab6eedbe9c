// Package apperr defines the structured application error that flows
// through the request pipeline.
//
// An [Error] is either operational (an anticipated condition raised on
// purpose, safe to describe to the client) or unexpected (a programmer fault
// or an error that was never classified). Handlers construct operational
// errors with [New]; everything else is turned into an unexpected error by
// [Classify] or [FromPanic] before it reaches the terminal handler.
//
// The correlation id is taken from the context passed at construction time
// and can be backfilled once if the error was created off the request path.
package apperr
