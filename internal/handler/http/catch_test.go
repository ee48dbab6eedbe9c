package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/apperr"
	"github.com/MKhiriev/go-request-pipeline/internal/mock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// appErrorMatcher matches an *apperr.Error with the given status and
// operational flag.
type appErrorMatcher struct {
	status      int
	operational bool
}

func (m appErrorMatcher) Matches(x any) bool {
	e, ok := x.(*apperr.Error)
	return ok && e.StatusCode() == m.status && e.IsOperational() == m.operational
}

func (m appErrorMatcher) String() string {
	return "is *apperr.Error with matching status and kind"
}

func TestCatch_Success_DoesNotForward(t *testing.T) {
	h, logs := newTestHandler(t)
	ctrl := gomock.NewController(t)
	errs := mock.NewMockErrorHandler(ctrl)
	errs.EXPECT().HandleError(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	h.errors = errs

	handler := h.Catch(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	rr := httptest.NewRecorder()
	handler(rr, newScopedRequest(h, http.MethodGet, "/ok", ""))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, logs.WithMessage(t, app.MsgCaughtAsyncError))
}

func TestCatch_Error_LogsOnceAndForwardsOnce(t *testing.T) {
	tests := []struct {
		name            string
		fn              HandlerFunc
		wantStatus      int
		wantOperational bool
		wantName        string
		wantCode        string
	}{
		{
			name: "operational error",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				return apperr.New(r.Context(), "Not found", http.StatusNotFound, apperr.WithCode("NOT_FOUND"))
			},
			wantStatus:      http.StatusNotFound,
			wantOperational: true,
			wantName:        "AppError",
			wantCode:        "NOT_FOUND",
		},
		{
			name: "plain error",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				return errors.New("db down")
			},
			wantStatus:      http.StatusInternalServerError,
			wantOperational: false,
			wantName:        "*errors.errorString",
			wantCode:        app.CodeUnknownError,
		},
		{
			name: "panic",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				panic("nil map write")
			},
			wantStatus:      http.StatusInternalServerError,
			wantOperational: false,
			wantName:        "AppError",
			wantCode:        app.CodeUnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, logs := newTestHandler(t)
			ctrl := gomock.NewController(t)
			errs := mock.NewMockErrorHandler(ctrl)
			errs.EXPECT().
				HandleError(gomock.Any(), gomock.Any(), appErrorMatcher{status: tt.wantStatus, operational: tt.wantOperational}).
				Times(1)
			h.errors = errs

			h.Catch(tt.fn)(httptest.NewRecorder(), newScopedRequest(h, http.MethodGet, "/items?id=7", ""))

			records := logs.WithMessage(t, app.MsgCaughtAsyncError)
			require.Len(t, records, 1)
			rec := records[0]
			assert.Equal(t, "error", rec["level"])
			md := metadata(t, rec)

			errField, ok := md["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, errField["name"])
			assert.Equal(t, tt.wantCode, errField["code"])
			assert.NotEmpty(t, errField["message"])
			assert.NotEmpty(t, errField["stack"])

			reqField, ok := md["request"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, http.MethodGet, reqField["method"])
			assert.Equal(t, "/items?id=7", reqField["url"])
			assert.Equal(t, "0123456789abcdef", reqField["requestId"])
			assert.Equal(t, map[string]any{"id": "7"}, reqField["query"])
		})
	}
}

func TestCatch_LogsRouteParams(t *testing.T) {
	h, logs := newTestHandler(t)
	ctrl := gomock.NewController(t)
	errs := mock.NewMockErrorHandler(ctrl)
	errs.EXPECT().HandleError(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	h.errors = errs

	r := newScopedRequest(h, http.MethodGet, "/users/42", "")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", "42")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	h.Catch(func(http.ResponseWriter, *http.Request) error { return assert.AnError })(httptest.NewRecorder(), r)

	records := logs.WithMessage(t, app.MsgCaughtAsyncError)
	require.Len(t, records, 1)
	reqField := metadata(t, records[0])["request"].(map[string]any)
	assert.Equal(t, map[string]any{"userID": "42"}, reqField["params"])
}

func TestCatch_AbortHandlerIsRepanicked(t *testing.T) {
	h, _ := newTestHandler(t)
	ctrl := gomock.NewController(t)
	errs := mock.NewMockErrorHandler(ctrl)
	errs.EXPECT().HandleError(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	h.errors = errs

	handler := h.Catch(func(http.ResponseWriter, *http.Request) error {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler(httptest.NewRecorder(), newScopedRequest(h, http.MethodGet, "/", ""))
	})
}

// TestCatch_FullPipeline verifies that with the real error pipeline exactly
// one response is written with the canonical body.
func TestCatch_FullPipeline(t *testing.T) {
	h, logs := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.Catch(func(w http.ResponseWriter, r *http.Request) error {
		return apperr.New(r.Context(), "Not found", http.StatusNotFound)
	})(rr, newScopedRequest(h, http.MethodGet, "/missing", ""))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Not found", body["message"])
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "0123456789abcdef", body["requestId"])

	assert.Len(t, logs.WithMessage(t, app.MsgCaughtAsyncError), 1)
	errorRecords := logs.WithMessage(t, app.MsgErrorOccurred)
	require.Len(t, errorRecords, 1)
	assert.Equal(t, "warn", errorRecords[0]["level"])
}
