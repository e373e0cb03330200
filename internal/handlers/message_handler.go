package handlers

import (
	"net/http"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/middleware"
	"trainertrust_backend/internal/services"
	"trainertrust_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	messages.Use(h.RequireAuth())
	{
		messages.POST("", middleware.RequirePermission(auth.PermMessagesWrite), h.Send)
		messages.GET("/inbox", h.Inbox)
		messages.GET("/with/:userId", h.Thread)
		messages.POST("/:id/read", h.MarkRead)
	}
}

func (h *MessageHandler) Send(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) Inbox(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	resp, err := h.messageService.Inbox(c.Request.Context(), h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) Thread(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	otherID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	messages, err := h.messageService.Thread(c.Request.Context(), h.GetDB(c), session, otherID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": len(messages)})
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.MarkRead(c.Request.Context(), h.GetDB(c), session, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
