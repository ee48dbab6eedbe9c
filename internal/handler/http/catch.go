package http

import (
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/apperr"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/rs/zerolog"
)

// Catch adapts fn to an http.HandlerFunc.
//
// A returned error, or a panic, is logged once at error level together with
// the request that triggered it and then forwarded once to the error
// pipeline, which writes the response. fn must not write a response for
// the error itself.
func (h *Handler) Catch(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := invoke(fn, w, r)
		if err == nil {
			return
		}

		appErr := classifyError(r.Context(), err)
		rc := requestContext(r)

		logger.FromRequest(r).Error().
			Dict(logger.MetadataField, zerolog.Dict().
				Dict("error", zerolog.Dict().
					Str("name", errorName(appErr)).
					Str("message", err.Error()).
					Str("stack", appErr.Stack()).
					Str("code", codeOrDefault(appErr))).
				Dict("request", zerolog.Dict().
					Str("method", rc.Method).
					Str("url", h.sanitizer.URL(rc.URL)).
					Interface("params", h.sanitizer.Map(routeParams(r))).
					Interface("query", h.sanitizer.Values(rc.Query)).
					Str("requestId", rc.RequestID))).
			Msg(app.MsgCaughtAsyncError)

		h.forwardError(w, r, appErr)
	}
}

// invoke runs fn and converts a panic into an unexpected error.
func invoke(fn HandlerFunc, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		err = apperr.FromPanic(r.Context(), rec, debug.Stack())
	}()

	return fn(w, r)
}

// errorName names the error for log records. Unexpected errors are named
// after the error they were classified from.
func errorName(e *apperr.Error) string {
	if !e.IsOperational() && e.Unwrap() != nil {
		return apperr.Name(e.Unwrap())
	}
	return apperr.Name(e)
}

func codeOrDefault(e *apperr.Error) string {
	if e.Code() == "" {
		return app.CodeUnknownError
	}
	return e.Code()
}
