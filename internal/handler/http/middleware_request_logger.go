package http

import (
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/rs/zerolog"
)

// withRequestLogging emits the info-level ingress record before any handler
// logic runs. Body, headers, params and query are sanitized first.
func (h *Handler) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := requestContext(r)

		logger.FromRequest(r).Info().
			Dict(logger.MetadataField, zerolog.Dict().
				Interface("body", h.sanitizer.Sanitize(rc.Body)).
				Interface("headers", h.sanitizer.Header(r.Header)).
				Str("ip", rc.ClientIP).
				Str("method", rc.Method).
				Interface("params", h.sanitizer.Map(routeParams(r))).
				Interface("query", h.sanitizer.Values(rc.Query)).
				Str("requestId", rc.RequestID).
				Str("url", h.sanitizer.URL(rc.URL)).
				Interface("user", rc.User).
				Str("userAgent", rc.UserAgent)).
			Msg(app.MsgIncomingRequest)

		next.ServeHTTP(w, r)
	})
}
