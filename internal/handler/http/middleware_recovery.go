package http

import (
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-request-pipeline/internal/apperr"
)

// withRecovery turns a panic in any later middleware or handler into an
// unexpected error and forwards it to the error pipeline.
// http.ErrAbortHandler is re-raised so that net/http can abort the
// connection quietly.
func (h *Handler) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.forwardError(w, r, apperr.FromPanic(r.Context(), rec, debug.Stack()))
		}()

		next.ServeHTTP(w, r)
	})
}
