// Package middleware provides the request guards shared by the API:
// cookie-based authentication, Redis rate limiting and response
// caching for the public listing endpoints.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mviller/propnest/internal/utils"
)

// CookieName is the cookie carrying the session token. It is the only
// credential transport; no bearer-header alternative is exposed.
const CookieName = "token"

// Context keys populated by CookieAuth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// CookieAuth returns middleware that authenticates a request from its
// token cookie. A missing cookie and a failed verification produce
// distinct generic messages but the same 401 status; the client never
// learns why verification failed. On success the claims are stored in
// the context under CtxUserID, CtxEmail and CtxRole.
func CookieAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false, "error": "Authentication required",
				})
			}
			claims, err := utils.VerifyAuthToken(secret, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false, "error": "Invalid token",
				})
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}
