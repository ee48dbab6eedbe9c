package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-request-pipeline/internal/config"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/MKhiriev/go-request-pipeline/internal/utils"
	"github.com/MKhiriev/go-request-pipeline/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// logBuffer is a goroutine-safe sink for log records written by handlers
// running on an httptest server.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// Records decodes every JSON record written so far.
func (b *logBuffer) Records(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	data := append([]byte(nil), b.buf.Bytes()...)
	b.mu.Unlock()

	var records []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), "line: %s", line)
		records = append(records, rec)
	}
	return records
}

// WithMessage returns the records whose message equals msg.
func (b *logBuffer) WithMessage(t *testing.T, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, rec := range b.Records(t) {
		if rec["message"] == msg {
			out = append(out, rec)
		}
	}
	return out
}

// metadata checks the common shape of a pipeline record, level, message,
// timestamp and a metadata object, and returns the metadata object.
func metadata(t *testing.T, rec map[string]any) map[string]any {
	t.Helper()
	require.Contains(t, rec, "level")
	require.Contains(t, rec, "message")

	ts, ok := rec[logger.TimestampField].(string)
	require.True(t, ok, "record has no timestamp: %v", rec)
	_, err := time.Parse(logger.TimestampFormat, ts)
	require.NoError(t, err)

	md, ok := rec[logger.MetadataField].(map[string]any)
	require.True(t, ok, "record has no metadata object: %v", rec)
	return md
}

func boolPtr(v bool) *bool {
	return &v
}

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			Env:     config.EnvDevelopment,
			Version: "1.2.3",
		},
		Server: config.Server{
			HTTPAddress: ":0",
			BodyLimit:   1024,
		},
		CORS: config.CORS{
			AllowedOrigins:       []string{"http://localhost:8085"},
			AllowedMethods:       []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
			AllowCredentials:     boolPtr(true),
			OptionsSuccessStatus: http.StatusOK,
		},
	}
}

// newTestHandler builds a Handler logging JSON records at debug level into
// the returned buffer. The buffer is reset after construction.
func newTestHandler(t *testing.T, mutate ...func(cfg *config.StructuredConfig)) (*Handler, *logBuffer) {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	logs := &logBuffer{}
	h := NewHandler(cfg, models.NewAppInfo(cfg.App.Env, cfg.App.Version, "", ""),
		logger.NewWithWriter("test", logs, zerolog.DebugLevel))
	logs.Reset()

	return h, logs
}

// withRequestScope attaches what withRequestID would attach, so a single
// middleware can be tested in isolation.
func withRequestScope(h *Handler, r *http.Request, requestID string) *http.Request {
	ctx := utils.WithRequestID(r.Context(), requestID)
	ctx = utils.WithRequest(ctx, newRequestContext(r, requestID))
	ctx = h.logger.WithRequestID(requestID).WithContext(ctx)
	return r.WithContext(ctx)
}

func newScopedRequest(h *Handler, method, target string, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return withRequestScope(h, r, "0123456789abcdef")
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}
