package appMiddleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahoefourseasons/itinerary-api/internal/limiter"
)

type stubLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (s *stubLimiter) Admit(_ context.Context, clientKey string) (bool, error) {
	s.lastKey = clientKey
	return s.allowed, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAdmits(t *testing.T) {
	l := &stubLimiter{allowed: true}
	handler := RateLimit(l, testLogger(), nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "203.0.113.7", l.lastKey, "port must be stripped from the client key")
}

func TestRateLimitDenies(t *testing.T) {
	l := &stubLimiter{allowed: false}
	handler := RateLimit(l, testLogger(), nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Rate limit exceeded", resp["error"])
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	l := &stubLimiter{allowed: false, err: errors.New("redis down")}
	handler := RateLimit(l, testLogger(), nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimitEndToEndWindow(t *testing.T) {
	l := limiter.NewMemoryLimiter(60*time.Second, 10)
	handler := RateLimit(l, testLogger(), nil)(okHandler())

	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", nil)
		req.RemoteAddr = "203.0.113.7:51234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		last = rr.Code
		if i < 10 {
			require.Equal(t, http.StatusOK, rr.Code, "request %d", i+1)
		}
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
