package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mviller/propnest/internal/config"
)

func TestRateLimitRejectsWhenBucketEmpty(t *testing.T) {
	rdb := newTestRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl",
	}

	e := echo.New()
	e.Use(RateLimit(cfg, rdb))
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	hit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := hit()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec = hit()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = hit()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Too many requests", body.Error)
}

// Separate routes draw from separate buckets.
func TestRateLimitKeyIsPerRoute(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/properties/prop-aaa", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/properties/:id")

	req2 := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req2.RemoteAddr = "10.0.0.9:1234"
	c2 := e.NewContext(req2, httptest.NewRecorder())
	c2.SetPath("/api/properties")

	assert.NotEqual(t, rateKey("rl", c), rateKey("rl", c2))
	assert.Equal(t, "rl:10.0.0.9:GET:/api/properties/:id", rateKey("rl", c))
}
