package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mviller/propnest/internal/queue"
	"github.com/mviller/propnest/internal/repository"
	queue_publisher "github.com/mviller/propnest/internal/service"
)

// MessageHandler serves the property message threads. Both endpoints
// require authentication; visibility of a thread is limited to the
// property owner and prior senders.
type MessageHandler struct {
	Msgs  MessageStore
	Props PropertyStore

	// PublishEvents toggles the best-effort broker notification after
	// a message is stored. Tests switch it off.
	PublishEvents bool
}

func NewMessageHandler(msgs MessageStore, props PropertyStore) *MessageHandler {
	return &MessageHandler{Msgs: msgs, Props: props, PublishEvents: true}
}

type createMessageReq struct {
	Content    string `json:"content"`
	PropertyID string `json:"propertyId"`
}

// List handles GET /api/messages?propertyId=. The caller must be the
// property owner or a participant (prior sender) on the thread.
func (h *MessageHandler) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	propertyID := c.QueryParam("propertyId")
	if propertyID == "" {
		return fail(c, http.StatusBadRequest, "Property ID is required")
	}

	ctx := c.Request().Context()
	prop, err := h.Props.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fail(c, http.StatusNotFound, "Property not found")
		}
		c.Logger().Errorf("list messages: lookup property: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if prop.OwnerID != uid {
		participant, err := h.Msgs.HasSenderMessage(ctx, propertyID, uid)
		if err != nil {
			c.Logger().Errorf("list messages: participant check: %v", err)
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
		if !participant {
			return fail(c, http.StatusForbidden, "Unauthorized")
		}
	}

	msgs, err := h.Msgs.ListByProperty(ctx, propertyID)
	if err != nil {
		c.Logger().Errorf("list messages: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return ok(c, http.StatusOK, msgs, "")
}

// Create handles POST /api/messages. Any authenticated user may
// message any existing property; sending the first message makes the
// sender a participant of that thread.
func (h *MessageHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	var req createMessageReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return fail(c, http.StatusBadRequest, "Message content is required")
	}
	if req.PropertyID == "" {
		return fail(c, http.StatusBadRequest, "Property ID is required")
	}

	ctx := c.Request().Context()
	prop, err := h.Props.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fail(c, http.StatusNotFound, "Property not found")
		}
		c.Logger().Errorf("send message: lookup property: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	m, err := h.Msgs.Create(ctx, uid, req.PropertyID, req.Content)
	if err != nil {
		c.Logger().Errorf("send message: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	if h.PublishEvents {
		ev := queue.MessageSentEvent{
			MessageID:     m.ID,
			PropertyID:    prop.ID,
			PropertyTitle: prop.Title,
			SenderID:      m.SenderID,
			OwnerID:       prop.OwnerID,
			SentAt:        m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if m.Sender != nil {
			ev.SenderName = m.Sender.Name
		}
		// Fire and forget; a broker outage must not fail the send.
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = queue_publisher.PublishMessageSent(pubCtx, ev)
		}()
	}

	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    m,
		Message: "Message sent successfully",
	})
}
