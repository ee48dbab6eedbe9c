package http

import "net/http"

// ErrorHandlerFunc adapts a plain function to [ErrorHandler].
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// HandleError calls f(w, r, err).
func (f ErrorHandlerFunc) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	f(w, r, err)
}

// ErrorMiddleware decorates an error stage, the same way func(http.Handler)
// http.Handler decorates a request handler.
type ErrorMiddleware func(next ErrorHandler) ErrorHandler

// HandlerFunc is a request handler that reports failure by returning an
// error instead of writing the response itself. Wrap it with
// [Handler.Catch] to mount it on a router.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ChainErrors composes stages in front of terminal. Stages run in the order
// given and terminal runs last.
func ChainErrors(terminal ErrorHandler, stages ...ErrorMiddleware) ErrorHandler {
	h := terminal
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return h
}

// forwardError hands err to the error pipeline. It is the only way
// middlewares and handlers report a failure to the client.
func (h *Handler) forwardError(w http.ResponseWriter, r *http.Request, err error) {
	h.errors.HandleError(w, r, err)
}
