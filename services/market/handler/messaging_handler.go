package handler

import (
	"net/http"

	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/services/market/helpers"
	"marketgo/utils"

	"github.com/gin-gonic/gin"
)

// SendMessageHandler handles POST /messages
func (h *MarketHandler) SendMessageHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "SendMessageHandler", marketerrors.ErrUnauthenticated)
		return
	}

	var req helpers.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SendMessageHandler", err)
		return
	}

	message, err := h.messaging.SendMessage(c.Request.Context(), user.UserID, req.RecipientID, req.Body)
	if err != nil {
		helpers.RespondError(c, "SendMessageHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, message, "message sent")
	helpers.LogSuccess("SendMessageHandler", "message sent", map[string]any{
		"message_id":   message.MessageID,
		"sender_id":    message.SenderID,
		"recipient_id": message.RecipientID,
	})
}

// ConversationHandler handles GET /messages/:other_user_id
func (h *MarketHandler) ConversationHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "ConversationHandler", marketerrors.ErrUnauthenticated)
		return
	}

	messages, err := h.messaging.Conversation(c.Request.Context(), user.UserID, c.Param("other_user_id"))
	if err != nil {
		helpers.RespondError(c, "ConversationHandler", err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	utils.JSONResponse(c, http.StatusOK, messages, "conversation retrieved successfully")
}

// ListNotificationsHandler handles GET /notifications
func (h *MarketHandler) ListNotificationsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "ListNotificationsHandler", marketerrors.ErrUnauthenticated)
		return
	}

	notifications, err := h.messaging.Notifications(c.Request.Context(), user.UserID)
	if err != nil {
		helpers.RespondError(c, "ListNotificationsHandler", err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	utils.JSONResponse(c, http.StatusOK, notifications, "notifications retrieved successfully")
}

// MarkNotificationReadHandler handles POST /notifications/:notification_id/read
func (h *MarketHandler) MarkNotificationReadHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		helpers.RespondError(c, "MarkNotificationReadHandler", marketerrors.ErrUnauthenticated)
		return
	}

	notificationID := c.Param("notification_id")
	marked, err := h.messaging.MarkRead(c.Request.Context(), user.UserID, notificationID)
	if err != nil {
		helpers.RespondError(c, "MarkNotificationReadHandler", err)
		return
	}
	if !marked {
		helpers.RespondError(c, "MarkNotificationReadHandler", marketerrors.ErrRowNotFound)
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "notification marked read")
}
