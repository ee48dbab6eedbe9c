package http

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/MKhiriev/go-request-pipeline/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requestIDPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

// ---- Helpers ----

func executeWithRequestID(h *Handler, clientHeader string) (*httptest.ResponseRecorder, *http.Request) {
	var capturedReq *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders?page=2", nil)
	req.Header.Set("User-Agent", "curl/8.0")
	if clientHeader != "" {
		req.Header.Set(requestIDHeader, clientHeader)
	}

	rr := httptest.NewRecorder()
	h.withRequestID(next).ServeHTTP(rr, req)
	return rr, capturedReq
}

func TestWithRequestID_SetsHeaderAndContext(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, req := executeWithRequestID(h, "")
	require.NotNil(t, req, "next handler must be called")

	requestID := rr.Header().Get(requestIDHeader)
	assert.Regexp(t, requestIDPattern, requestID)

	fromCtx, ok := utils.GetRequestIDFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, requestID, fromCtx)

	rc, ok := utils.GetRequestFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, requestID, rc.RequestID)
	assert.Equal(t, http.MethodPost, rc.Method)
	assert.Equal(t, "/orders?page=2", rc.URL)
	assert.Equal(t, "192.0.2.1", rc.ClientIP)
	assert.Equal(t, "curl/8.0", rc.UserAgent)
	assert.Equal(t, "2", rc.Query.Get("page"))
	assert.Nil(t, rc.User)
}

func TestWithRequestID_IgnoresClientHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, _ := executeWithRequestID(h, "client-chosen-id")

	requestID := rr.Header().Get(requestIDHeader)
	assert.NotEqual(t, "client-chosen-id", requestID)
	assert.Regexp(t, requestIDPattern, requestID)
}

func TestWithRequestID_UniquePerRequest(t *testing.T) {
	h, _ := newTestHandler(t)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		rr, _ := executeWithRequestID(h, "")
		id := rr.Header().Get(requestIDHeader)
		_, dup := seen[id]
		require.False(t, dup, "duplicate request id %s", id)
		seen[id] = struct{}{}
	}
}

// TestWithRequestID_LoggerCarriesID verifies that records written through the
// request-scoped logger carry the correlation id.
func TestWithRequestID_LoggerCarriesID(t *testing.T) {
	h, logs := newTestHandler(t)

	var requestID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ = utils.GetRequestIDFromContext(r.Context())
		logger.FromRequest(r).Info().Msg("inside handler")
	})

	h.withRequestID(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	records := logs.WithMessage(t, "inside handler")
	require.Len(t, records, 1)
	assert.Equal(t, requestID, records[0][logger.RequestIDField])
}
