package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/apperr"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// withBody decodes JSON and url-encoded bodies into the request record so
// that the request and error loggers can report them.
//
// The raw bytes are put back on r.Body, so handlers read the body as usual.
// Bodies larger than the configured limit are rejected with 413 and
// malformed ones with 400. Other content types pass through untouched.
func (h *Handler) withBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType != contentTypeJSON && mediaType != contentTypeForm {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.Server.BodyLimit))
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.forwardError(w, r, apperr.New(ctx, app.MsgPayloadTooLarge, http.StatusRequestEntityTooLarge,
					apperr.WithCode(app.CodePayloadTooLarge)))
				return
			}
			h.forwardError(w, r, apperr.New(ctx, app.MsgUnreadableBody, http.StatusBadRequest,
				apperr.WithCode(app.CodeBadRequest), apperr.WithCause(err)))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(raw))

		if len(bytes.TrimSpace(raw)) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		var body any
		switch mediaType {
		case contentTypeJSON:
			if err = json.Unmarshal(raw, &body); err != nil {
				h.forwardError(w, r, apperr.New(ctx, app.MsgInvalidJSONBody, http.StatusBadRequest,
					apperr.WithCode(app.CodeInvalidJSON), apperr.WithCause(err)))
				return
			}
		case contentTypeForm:
			form, err := url.ParseQuery(string(raw))
			if err != nil {
				h.forwardError(w, r, apperr.New(ctx, app.MsgInvalidFormBody, http.StatusBadRequest,
					apperr.WithCode(app.CodeInvalidForm), apperr.WithCause(err)))
				return
			}
			body = form
		}

		requestContext(r).Body = body
		next.ServeHTTP(w, r)
	})
}
