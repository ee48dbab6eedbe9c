package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/apperr"
	"github.com/MKhiriev/go-request-pipeline/internal/mock"
	"github.com/MKhiriev/go-request-pipeline/internal/sanitizer"
	"github.com/MKhiriev/go-request-pipeline/internal/utils"
	"github.com/MKhiriev/go-request-pipeline/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLogErrors_LevelAndFields(t *testing.T) {
	tests := []struct {
		name              string
		err               func(ctx context.Context) error
		wantLevel         string
		wantName          string
		wantCode          string
		wantStatus        float64
		wantOperational   bool
		wantCausePresent  bool
		wantForwardStatus int
	}{
		{
			name: "operational error logs at warn",
			err: func(ctx context.Context) error {
				return apperr.New(ctx, "Tour not found", http.StatusNotFound, apperr.WithCode("NOT_FOUND"))
			},
			wantLevel:         "warn",
			wantName:          "AppError",
			wantCode:          "NOT_FOUND",
			wantStatus:        404,
			wantOperational:   true,
			wantForwardStatus: http.StatusNotFound,
		},
		{
			name: "operational error without code",
			err: func(ctx context.Context) error {
				return apperr.New(ctx, "bad input", http.StatusBadRequest)
			},
			wantLevel:         "warn",
			wantName:          "AppError",
			wantCode:          app.CodeUnknownError,
			wantStatus:        400,
			wantOperational:   true,
			wantForwardStatus: http.StatusBadRequest,
		},
		{
			name: "plain error logs at error",
			err: func(context.Context) error {
				return errors.New("connection refused")
			},
			wantLevel:         "error",
			wantName:          "*errors.errorString",
			wantCode:          app.CodeUnknownError,
			wantStatus:        500,
			wantOperational:   false,
			wantCausePresent:  true,
			wantForwardStatus: http.StatusInternalServerError,
		},
		{
			name: "auth sentinel becomes operational",
			err: func(context.Context) error {
				return utils.ErrInvalidBearerHeader
			},
			wantLevel:         "warn",
			wantName:          "AppError",
			wantCode:          app.CodeUnauthorized,
			wantStatus:        401,
			wantOperational:   true,
			wantCausePresent:  true,
			wantForwardStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, logs := newTestHandler(t)
			ctrl := gomock.NewController(t)
			next := mock.NewMockErrorHandler(ctrl)
			next.EXPECT().
				HandleError(gomock.Any(), gomock.Any(), appErrorMatcher{status: tt.wantForwardStatus, operational: tt.wantOperational}).
				Times(1)

			req := newScopedRequest(h, http.MethodGet, "/tours/7?sort=asc", "")
			h.logErrors(next).HandleError(httptest.NewRecorder(), req, tt.err(req.Context()))

			records := logs.WithMessage(t, app.MsgErrorOccurred)
			require.Len(t, records, 1)
			rec := records[0]
			assert.Equal(t, tt.wantLevel, rec["level"])
			md := metadata(t, rec)

			errField := md["error"].(map[string]any)
			assert.Equal(t, tt.wantName, errField["name"])
			assert.Equal(t, tt.wantCode, errField["code"])
			assert.Equal(t, tt.wantStatus, errField["status"])
			assert.Equal(t, tt.wantOperational, errField["isOperational"])
			assert.NotEmpty(t, errField["stack"])
			_, hasCause := errField["cause"]
			assert.Equal(t, tt.wantCausePresent, hasCause)

			reqField := md["request"].(map[string]any)
			assert.Equal(t, "0123456789abcdef", reqField["requestId"])
			assert.Equal(t, http.MethodGet, reqField["method"])
			assert.Equal(t, "/tours/7?sort=asc", reqField["url"])
			assert.Equal(t, map[string]any{"sort": "asc"}, reqField["query"])

			assert.Contains(t, md, "user")
			assert.Nil(t, md["user"])

			appField := md["app"].(map[string]any)
			assert.Equal(t, "development", appField["env"])
			assert.Equal(t, "1.2.3", appField["version"])
			assert.Equal(t, runtime.Version(), appField["goVersion"])
		})
	}
}

func TestLogErrors_SanitizesAndReportsUser(t *testing.T) {
	h, logs := newTestHandler(t)
	ctrl := gomock.NewController(t)
	next := mock.NewMockErrorHandler(ctrl)
	next.EXPECT().HandleError(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	req := newScopedRequest(h, http.MethodPost, "/login", "")
	req.Header.Set("Authorization", "Bearer abc")
	rc, ok := utils.GetRequestFromContext(req.Context())
	require.True(t, ok)
	rc.Body = map[string]any{"email": "a@b.c", "password": "hunter2"}
	rc.User = &models.User{ID: 9}

	h.logErrors(next).HandleError(httptest.NewRecorder(), req, apperr.New(req.Context(), "nope", http.StatusForbidden))

	records := logs.WithMessage(t, app.MsgErrorOccurred)
	require.Len(t, records, 1)
	md := metadata(t, records[0])
	reqField := md["request"].(map[string]any)

	assert.Equal(t, map[string]any{"email": "a@b.c", "password": sanitizer.Redacted}, reqField["body"])
	assert.Equal(t, sanitizer.Redacted, reqField["headers"].(map[string]any)["Authorization"])
	assert.Equal(t, map[string]any{"id": float64(9)}, md["user"])
}

func TestLogErrors_DoesNotWriteResponse(t *testing.T) {
	h, _ := newTestHandler(t)
	next := ErrorHandlerFunc(func(http.ResponseWriter, *http.Request, error) {})

	rr := httptest.NewRecorder()
	h.logErrors(next).HandleError(rr, newScopedRequest(h, http.MethodGet, "/", ""), errors.New("boom"))

	assert.Zero(t, rr.Body.Len())
	assert.False(t, rr.Flushed)
}
