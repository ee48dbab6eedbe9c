package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/MKhiriev/go-request-pipeline/internal/utils"
	"github.com/MKhiriev/go-request-pipeline/models"
)

// withAuth authenticates requests that carry a bearer token.
//
// Authentication is optional: it is skipped entirely when no token sign key
// is configured, and requests without an "Authorization" header continue
// as anonymous. A header that is not a bearer token, or a token that fails
// validation, is forwarded to the error pipeline where it becomes a 401.
//
// On success the user id is stored in the request context under
// [utils.UserIDCtxKey] and the user is attached to the request record, so
// later error records report who triggered them.
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if h.cfg.App.TokenSignKey == "" || authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("rejecting authorization header")
			h.forwardError(w, r, err)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.cfg.App.TokenSignKey, h.cfg.App.TokenIssuer)
		if err != nil {
			log.Debug().Err(err).Msg("rejecting bearer token")
			h.forwardError(w, r, err)
			return
		}

		requestContext(r).User = &models.User{ID: token.UserID}
		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
