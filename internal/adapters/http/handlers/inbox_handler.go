package handlers

import (
	"errors"
	"strconv"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InboxHandler handles the per-user message inbox
type InboxHandler struct {
	messageService *services.MessageService
}

// NewInboxHandler creates a new inbox handler
func NewInboxHandler(messageService *services.MessageService) *InboxHandler {
	return &InboxHandler{messageService: messageService}
}

// List handles listing the caller's messages
// @Summary List inbox
// @Description List the caller's messages, newest first
// @Tags Inbox
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Router /inbox [get]
func (h *InboxHandler) List(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	messages, err := h.messageService.Inbox(c.Context(), identity.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	unread, err := h.messageService.UnreadCount(c.Context(), identity.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	return response.Success(c, "Messages retrieved successfully", fiber.Map{
		"messages":     messages,
		"unread_count": unread,
	})
}

// Detail handles opening one message. Opening marks it read; only the
// recipient can open it.
// @Summary Get message
// @Description Open one of the caller's messages and mark it read
// @Tags Inbox
// @Produce json
// @Security SessionAuth
// @Param id path int true "Message ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inbox/{id} [get]
func (h *InboxHandler) Detail(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	message, err := h.messageService.Detail(c.Context(), identity.UserID, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to get message")
	}

	return response.Success(c, "Message retrieved successfully", fiber.Map{
		"message": message,
	})
}

// MarkRead handles flagging one message as read without returning its body
// @Summary Mark message read
// @Description Flag one of the caller's messages as read
// @Tags Inbox
// @Produce json
// @Security SessionAuth
// @Param id path int true "Message ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inbox/{id}/read [get]
func (h *InboxHandler) MarkRead(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	if err := h.messageService.MarkRead(c.Context(), identity.UserID, uint(id)); err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to mark message read")
	}

	return response.Success(c, "Message marked as read", nil)
}
