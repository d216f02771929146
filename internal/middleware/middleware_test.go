package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = r.Context().Value(RequestIDContextKey).(string)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	w := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	headerID := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, headerID)
	assert.Equal(t, headerID, seenID)
	_, err := uuid.Parse(headerID)
	assert.NoError(t, err)
}

func TestCORS_SetsHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	w := httptest.NewRecorder()
	CORS(inner).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("OPTIONS", "/api/sync", nil)
	w := httptest.NewRecorder()
	CORS(inner).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, called, "preflight must not reach the handler")
}
