package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})), &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))

	return entry
}

func TestLogging(t *testing.T) {

	t.Run("Sets a request id and keeps the status", func(t *testing.T) {
		// Arrange
		logger, buf := newJSONLogger()
		rr := httptest.NewRecorder()
		handler := middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotNil(t, middleware.LoggerFromContext(r.Context()))
			w.WriteHeader(http.StatusTeapot)
		}))

		// Act
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		// Assert
		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
		entry := lastLine(t, buf)
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	})

	t.Run("Reuses the caller's request id", func(t *testing.T) {
		logger, _ := newJSONLogger()
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")

		middleware.Logging(logger)(okHandler(t, nil)).ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Malformed request id is replaced", func(t *testing.T) {
		logger, _ := newJSONLogger()
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "bad id\twith spaces")

		middleware.Logging(logger)(okHandler(t, nil)).ServeHTTP(rr, req)

		assert.NotEqual(t, "bad id\twith spaces", rr.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Device id is attached to handler and access lines", func(t *testing.T) {
		// Arrange
		logger, buf := newJSONLogger()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)
		req.Header.Set(middleware.DeviceIDHeader, "device-42")
		handler := middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middleware.LoggerFromContext(r.Context()).Info("Cart updated")
			_, _ = w.Write([]byte(`{"success":true}`))
		}))

		// Act
		handler.ServeHTTP(httptest.NewRecorder(), req)

		// Assert
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		for _, line := range lines {
			var entry map[string]any
			require.NoError(t, json.Unmarshal(line, &entry))
			assert.Equal(t, "device-42", entry["device_id"])
			assert.Equal(t, "/api/v1/cart/items", entry["path"])
		}
		entry := lastLine(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, float64(len(`{"success":true}`)), entry["bytes"])
	})

	t.Run("Malformed device id is left out", func(t *testing.T) {
		logger, buf := newJSONLogger()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.DeviceIDHeader, "has spaces in it")

		middleware.Logging(logger)(okHandler(t, nil)).ServeHTTP(httptest.NewRecorder(), req)

		assert.NotContains(t, lastLine(t, buf), "device_id")
	})
}
