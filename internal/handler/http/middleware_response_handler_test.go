package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- WriteHeader ----

func TestResponseWriter_WriteHeader_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		statusCodes    []int // multiple WriteHeader calls
		expectedStatus int
	}{
		{
			name:           "200 OK",
			statusCodes:    []int{http.StatusOK},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "404 Not Found",
			statusCodes:    []int{http.StatusNotFound},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "double call, first wins",
			statusCodes:    []int{http.StatusAccepted, http.StatusBadRequest},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "triple call, first wins",
			statusCodes:    []int{http.StatusOK, http.StatusCreated, http.StatusNotFound},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := newResponseWriter(rr)

			for _, code := range tt.statusCodes {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.expectedStatus, w.Status())
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.True(t, w.Written())
		})
	}
}

// ---- Write ----

func TestResponseWriter_Write_ImplicitOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	_, err = w.Write([]byte(" world"))
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, 11, w.size)
	assert.Equal(t, http.StatusOK, w.Status())
	assert.Equal(t, "hello world", rr.Body.String())
}

func TestResponseWriter_Untouched(t *testing.T) {
	w := newResponseWriter(httptest.NewRecorder())

	assert.False(t, w.Written())
	assert.Equal(t, http.StatusOK, w.Status())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	assert.Same(t, rr, w.Unwrap())
	assert.NoError(t, http.NewResponseController(w).Flush())
	assert.True(t, rr.Flushed)
}

func TestResponseStarted(t *testing.T) {
	rr := httptest.NewRecorder()
	assert.False(t, responseStarted(rr), "plain writers are assumed untouched")

	w := newResponseWriter(rr)
	assert.False(t, responseStarted(w))

	w.WriteHeader(http.StatusTeapot)
	assert.True(t, responseStarted(w))
}
