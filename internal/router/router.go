// Package router wires the API routes to their handlers and
// middleware. Listing reads are public (and cached when Redis is
// around); everything that mutates state or reads private threads
// sits behind the cookie auth guard.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mviller/propnest/internal/config"
	"github.com/mviller/propnest/internal/handler"
	"github.com/mviller/propnest/internal/middleware"
)

// Register mounts every route of the service on e.
func Register(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, p *handler.PropertyHandler, m *handler.MessageHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	auth := middleware.CookieAuth(cfg.JWTSecret)
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, auth)

	// GET on /api/properties is world-readable; the same paths take
	// the auth guard for mutations, so middleware is attached per
	// route instead of per group.
	e.GET("/api/properties", p.List, cache)
	e.GET("/api/properties/:id", p.Get, cache)
	e.POST("/api/properties", p.Create, auth)
	e.PUT("/api/properties/:id", p.Update, auth)
	e.DELETE("/api/properties/:id", p.Delete, auth)

	e.GET("/api/messages", m.List, auth)
	e.POST("/api/messages", m.Create, auth)
}
