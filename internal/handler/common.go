// Package handler implements the HTTP endpoints of the marketplace
// API. Every response uses the same envelope, and every protected
// handler reads the authenticated identity that the cookie middleware
// stored in the request context.
package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/mviller/propnest/internal/middleware"
	"github.com/mviller/propnest/internal/model"
	"github.com/mviller/propnest/internal/repository"
)

// response is the fixed envelope shared by all endpoints:
// {success, data?, message?, error?}.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c echo.Context, status int, data any, msg string) error {
	return c.JSON(status, response{Success: true, Data: data, Message: msg})
}

func fail(c echo.Context, status int, errMsg string) error {
	return c.JSON(status, response{Success: false, Error: errMsg})
}

// userID returns the authenticated user's ID placed in the context by
// the cookie middleware. Handlers behind that middleware can rely on
// it being present; an empty value means the route was misregistered.
func userID(c echo.Context) (string, error) {
	v, ok := c.Get(middleware.CtxUserID).(string)
	if !ok || v == "" {
		return "", errors.New("no authenticated user in context")
	}
	return v, nil
}

// Store interfaces consumed by the handlers. The repository types
// satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash, role string, phone *string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

type PropertyStore interface {
	Create(ctx context.Context, ownerID string, p model.Property) (model.Property, error)
	GetByID(ctx context.Context, id string) (model.Property, error)
	Search(ctx context.Context, q repository.SearchQuery) ([]model.Property, int64, error)
	Update(ctx context.Context, id string, patch model.PropertyPatch) (model.Property, error)
	Delete(ctx context.Context, id string) error
}

type MessageStore interface {
	Create(ctx context.Context, senderID, propertyID, content string) (model.Message, error)
	ListByProperty(ctx context.Context, propertyID string) ([]model.Message, error)
	HasSenderMessage(ctx context.Context, propertyID, userID string) (bool, error)
}
