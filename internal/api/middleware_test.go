// filepath: internal/api/middleware_test.go
package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noahchrist/myCbbModel/internal/logging"

	"github.com/stretchr/testify/assert"
)

// captureLog redirects the shared logger into a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	oldOut := logging.Log.Out
	logging.Log.SetOutput(&buf)
	t.Cleanup(func() { logging.Log.SetOutput(oldOut) })
	return &buf
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seenID string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/ping", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.NotEmpty(t, seenID)
	assert.Len(t, seenID, 36) // UUID v4 string form
	assert.Equal(t, seenID, rr.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddleware_KeepsProvidedID(t *testing.T) {
	var seenID string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "client-supplied-id", seenID)
	assert.Equal(t, "client-supplied-id", rr.Header().Get("X-Request-ID"))
}

func TestLoggingMiddleware(t *testing.T) {
	buf := captureLog(t)

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest("GET", "/missing", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, buf.String(), "Request completed")
	assert.Contains(t, buf.String(), "method=GET")
	assert.Contains(t, buf.String(), "path=/missing")
	assert.Contains(t, buf.String(), "status=404")
}

func TestLoggingMiddleware_DefaultsToStatusOK(t *testing.T) {
	buf := captureLog(t)

	// A handler that writes a body without calling WriteHeader still sends 200.
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest("GET", "/ping", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Contains(t, buf.String(), "status=200")
}

func TestCORSMiddleware(t *testing.T) {
	nextCalled := false
	handler := CORSMiddleware("http://localhost:5173")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest("GET", "/ping", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.True(t, nextCalled)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	nextCalled := false
	handler := CORSMiddleware("http://localhost:5173")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.False(t, nextCalled, "preflight requests must not reach the handler")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	buf := captureLog(t)

	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something broke")
	}))

	req := httptest.NewRequest("GET", "/ping", nil)
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() { handler.ServeHTTP(rr, req) })
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
	assert.Contains(t, buf.String(), "something broke")
}
