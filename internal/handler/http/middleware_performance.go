package http

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/rs/zerolog"
)

// withPerformanceLogging emits one http-level record per completed request
// with the final status, the elapsed time in milliseconds and a snapshot of
// the process memory. Requests aborted by the client produce no record.
func (h *Handler) withPerformanceLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		if errors.Is(r.Context().Err(), context.Canceled) {
			return
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		logger.FromRequest(r).HTTP().
			Dict(logger.MetadataField, zerolog.Dict().
				Str("method", r.Method).
				Str("url", h.sanitizer.URL(requestURL(r))).
				Int("status", rw.Status()).
				Float64("duration", float64(duration.Microseconds())/1000).
				Str("requestId", requestContext(r).RequestID).
				Dict("memory", zerolog.Dict().
					Uint64("heapUsed", mem.HeapAlloc).
					Uint64("heapTotal", mem.HeapSys).
					Uint64("external", mem.Sys-mem.HeapSys))).
			Msg(app.MsgRequestCompleted)
	})
}
