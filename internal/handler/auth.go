package handler

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mviller/propnest/internal/config"
	"github.com/mviller/propnest/internal/middleware"
	"github.com/mviller/propnest/internal/model"
	"github.com/mviller/propnest/internal/repository"
	"github.com/mviller/propnest/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResp is the client-facing user shape; the password hash never
// appears here.
type userResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     *string   `json:"phone"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type authData struct {
	User  userResp `json:"user"`
	Token string   `json:"token"`
}

func toUserResp(u model.User) userResp {
	return userResp{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role,
		Phone: u.Phone, Avatar: u.Avatar,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

// validate returns the first failing rule's message, or "" when the
// request is well formed.
func (r *registerReq) validate() string {
	if len(strings.TrimSpace(r.Name)) < 2 {
		return "Name must be at least 2 characters"
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		return "Invalid email address"
	}
	if len(r.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	if !model.ValidRole(r.Role) {
		return "Role must be OWNER or SEEKER"
	}
	return ""
}

func (r *loginReq) validate() string {
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		return "Invalid email address"
	}
	if r.Password == "" {
		return "Password is required"
	}
	return ""
}

// Register creates a user, stores only the bcrypt hash of the
// password, and signs the caller in immediately: the session token is
// both returned in the body and set as the auth cookie.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		c.Logger().Errorf("register: hash password: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	u, err := h.Users.Create(ctx, req.Email, strings.TrimSpace(req.Name), hash, req.Role, req.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusBadRequest, "User already exists with this email")
		}
		c.Logger().Errorf("register: create user: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret,
		utils.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}, h.Cfg.TokenTTL)
	if err != nil {
		c.Logger().Errorf("register: issue token: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	h.setAuthCookie(c, tok)

	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    authData{User: toUserResp(u), Token: tok.Token},
		Message: "User registered successfully",
	})
}

// Login verifies credentials and issues a fresh session token. Unknown
// email and wrong password produce the identical response so the
// client cannot tell which field was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		}
		c.Logger().Errorf("login: query user: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret,
		utils.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}, h.Cfg.TokenTTL)
	if err != nil {
		c.Logger().Errorf("login: issue token: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	h.setAuthCookie(c, tok)

	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    authData{User: toUserResp(u), Token: tok.Token},
		Message: "Login successful",
	})
}

// Logout clears the auth cookie. Tokens are not tracked server-side,
// so there is nothing else to revoke; the cookie removal ends the
// browser session.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, response{Success: true, Message: "Logged out successfully"})
}

// Me echoes the authenticated identity from the verified token.
func (h *AuthHandler) Me(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{
		"id":    c.Get(middleware.CtxUserID),
		"email": c.Get(middleware.CtxEmail),
		"role":  c.Get(middleware.CtxRole),
	}, "")
}

func (h *AuthHandler) setAuthCookie(c echo.Context, tok utils.AuthToken) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		MaxAge:   int(h.Cfg.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
