package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mviller/propnest/internal/utils"
)

const testSecret = "middleware-test-secret"

func runCookieAuth(t *testing.T, cookie *http.Cookie) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, CookieAuth(testSecret)(next)(c))
	return rec, c, called
}

func TestCookieAuthMissingCookie(t *testing.T) {
	rec, _, called := runCookieAuth(t, nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Authentication required"}`, rec.Body.String())
}

func TestCookieAuthInvalidToken(t *testing.T) {
	rec, _, called := runCookieAuth(t, &http.Cookie{Name: CookieName, Value: "garbage"})
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid token"}`, rec.Body.String())
}

func TestCookieAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, utils.Claims{UserID: "u-1"}, -time.Minute)
	require.NoError(t, err)

	rec, _, called := runCookieAuth(t, &http.Cookie{Name: CookieName, Value: tok.Token})
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Expired and malformed tokens read identically to the client.
	assert.JSONEq(t, `{"success":false,"error":"Invalid token"}`, rec.Body.String())
}

func TestCookieAuthValidToken(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret,
		utils.Claims{UserID: "u-1", Email: "ann@x.com", Role: "OWNER"}, time.Hour)
	require.NoError(t, err)

	rec, c, called := runCookieAuth(t, &http.Cookie{Name: CookieName, Value: tok.Token})
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", c.Get(CtxUserID))
	assert.Equal(t, "ann@x.com", c.Get(CtxEmail))
	assert.Equal(t, "OWNER", c.Get(CtxRole))
}
