package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mviller/propnest/internal/config"
)

// bodyCapture tees the response body into a buffer while forwarding
// it to the client, up to a size limit.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	if remain := w.limit - w.size; remain > 0 {
		if int64(len(b)) <= remain {
			w.buf.Write(b)
		} else {
			w.buf.Write(b[:remain])
		}
	}
	w.size += int64(len(b))
	return w.ResponseWriter.Write(b)
}

// ResponseCache caches successful GET responses in Redis, keyed on
// route and query string. It is applied only to the public property
// endpoints, where listings tolerate a few seconds of staleness and
// the search query is the expensive part. Anything but a 200, and any
// body larger than the configured cap, is never cached.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil && len(body) > 0 {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &bodyCapture{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Header().Set("X-Cache", "MISS")
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.size > 0 && cw.size <= cw.limit {
				// Best effort; a failed SET only costs the next request a miss.
				_ = rdb.Set(ctx, key, cw.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}

// cacheKey hashes the concrete request path, not the registered route,
// so /api/properties/A and /api/properties/B never share an entry.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Request().URL.Path + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}
