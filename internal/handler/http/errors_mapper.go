package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/apperr"
	"github.com/MKhiriev/go-request-pipeline/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// errorMapping turns a known sentinel into an operational error.
type errorMapping struct {
	status  int
	code    string
	message string
}

var (
	invalidHeader = errorMapping{http.StatusUnauthorized, app.CodeUnauthorized, app.MsgInvalidAuthorizationHeader}
	invalidToken  = errorMapping{http.StatusUnauthorized, app.CodeUnauthorized, app.MsgTokenIsExpiredOrInvalid}
)

var errorStatusMap = map[error]errorMapping{
	utils.ErrInvalidBearerHeader: invalidHeader,

	utils.ErrEmptySubject:        invalidToken,
	utils.ErrInvalidSubject:      invalidToken,
	jwt.ErrTokenMalformed:        invalidToken,
	jwt.ErrTokenUnverifiable:     invalidToken,
	jwt.ErrTokenSignatureInvalid: invalidToken,
	jwt.ErrTokenExpired:          invalidToken,
	jwt.ErrTokenNotValidYet:      invalidToken,
	jwt.ErrTokenInvalidIssuer:    invalidToken,
	jwt.ErrTokenInvalidClaims:    invalidToken,
}

// classifyError converts err into an *apperr.Error. Application errors are
// kept as they are, known sentinels become operational errors and anything
// else is classified as unexpected.
func classifyError(ctx context.Context, err error) *apperr.Error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	for target, m := range errorStatusMap {
		if errors.Is(err, target) {
			return apperr.New(ctx, m.message, m.status, apperr.WithCode(m.code), apperr.WithCause(err))
		}
	}

	return apperr.Classify(ctx, err)
}
