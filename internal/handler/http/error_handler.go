package http

import (
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/MKhiriev/go-request-pipeline/internal/utils"
)

// handleError is the terminal stage of the error pipeline and the only code
// that writes an error response.
//
// The status is the error's status code, or 500 when it is outside the
// HTTP range. In production, unexpected errors are reported with a generic
// message; elsewhere the raw message and the stack are included to ease
// debugging. If the response has already been started nothing is written.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	appErr := classifyError(ctx, err)
	if requestID, ok := utils.GetRequestIDFromContext(ctx); ok {
		appErr.BackfillRequestID(requestID)
	}

	if responseStarted(w) {
		log.Warn().Err(appErr).Msg("response already started, error response dropped")
		return
	}

	resp := appErr.Response()
	if h.cfg.IsProduction() {
		if !appErr.IsOperational() {
			resp.Message = app.MsgInternalServerError
		}
	} else {
		resp.Stack = appErr.Stack()
	}

	if _, err := utils.WriteJSON(w, resp, appErr.HTTPStatus()); err != nil {
		log.Debug().Err(err).Msg("error writing error response")
	}
}
