package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestClientLimiterSeparatesClients(t *testing.T) {
	l := NewClientLimiter(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})

	if !l.Allow("a") {
		t.Fatal("first request for a rejected")
	}
	if l.Allow("a") {
		t.Fatal("second request for a allowed past burst")
	}
	if !l.Allow("b") {
		t.Fatal("client b throttled by client a")
	}
}

func TestGetLimiterIsStable(t *testing.T) {
	l := NewClientLimiter(DefaultConfig())
	if l.GetLimiter("x") != l.GetLimiter("x") {
		t.Fatal("limiter recreated for the same client")
	}

	l.SetClientLimit("x", 1, 3)
	if got := l.GetLimiter("x").Burst(); got != 3 {
		t.Fatalf("burst = %d, want 3", got)
	}
}

func TestMiddleware(t *testing.T) {
	e := echo.New()
	l := NewClientLimiter(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	e.Use(l.Middleware())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 2)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("status codes = %v, want [200 429]", codes)
	}
}
