package http

import (
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/utils"
)

const requestIDHeader = "X-Request-ID"

// withRequestID assigns the correlation id of the request.
//
// The id is generated from the arrival time, a random token and the client
// address. It is stored in the request context together with the request
// record and a child logger whose records all carry it, and it is echoed in
// the X-Request-ID response header. Ids sent by the client are ignored.
func (h *Handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := h.requestIDs.Generate(utils.ClientIP(r))
		rc := newRequestContext(r, requestID)

		ctx := utils.WithRequestID(r.Context(), requestID)
		ctx = utils.WithRequest(ctx, rc)
		ctx = h.logger.WithRequestID(requestID).WithContext(ctx)

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
