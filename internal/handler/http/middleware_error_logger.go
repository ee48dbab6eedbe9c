package http

import (
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/rs/zerolog"
)

// logErrors is the error logging stage of the error pipeline.
//
// Operational errors are logged at warn, everything else at error. The
// record carries the classified error, the sanitized request, the
// authenticated user and the application metadata. The stage never writes a
// response: it always forwards the classified error to next.
func (h *Handler) logErrors(next ErrorHandler) ErrorHandler {
	return ErrorHandlerFunc(func(w http.ResponseWriter, r *http.Request, err error) {
		appErr := classifyError(r.Context(), err)
		rc := requestContext(r)
		log := logger.FromRequest(r)

		event := log.Error()
		if appErr.IsOperational() {
			event = log.Warn()
		}

		event.
			Dict(logger.MetadataField, zerolog.Dict().
				Dict("error", zerolog.Dict().
					Str("name", errorName(appErr)).
					Str("message", appErr.Message()).
					Str("stack", appErr.Stack()).
					Str("code", codeOrDefault(appErr)).
					Int("status", appErr.HTTPStatus()).
					Bool("isOperational", appErr.IsOperational()).
					AnErr("cause", appErr.Unwrap())).
				Dict("request", zerolog.Dict().
					Interface("query", h.sanitizer.Values(rc.Query)).
					Interface("params", h.sanitizer.Map(routeParams(r))).
					Interface("body", h.sanitizer.Sanitize(rc.Body)).
					Interface("headers", h.sanitizer.Header(r.Header)).
					Str("ip", rc.ClientIP).
					Str("userAgent", rc.UserAgent).
					Str("requestId", rc.RequestID).
					Str("method", rc.Method).
					Str("url", h.sanitizer.URL(rc.URL))).
				Interface("user", rc.User).
				Dict("app", zerolog.Dict().
					Str("env", h.appInfo.Env()).
					Str("version", h.appInfo.Version()).
					Str("goVersion", h.appInfo.GoVersion()))).
			Msg(app.MsgErrorOccurred)

		next.HandleError(w, r, appErr)
	})
}
