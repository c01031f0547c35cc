package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yerinchoi/lingotalk-backend/internal/http/response"
	"github.com/yerinchoi/lingotalk-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, err := ch.chatService.StartSession(c.Request.Context(), userID, req.Topic)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadRequest), "start_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"session_id": state.SessionID,
		"topic":      state.Topic,
		"ai_role":    state.Roles.AIRole,
		"user_role":  state.Roles.UserRole,
	})
}

func (ch *ChatHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ch.chatService.SendText(c.Request.Context(), userID, req.SessionID, req.Message)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadGateway), "send_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// Exit finalizes the session. 204 means the session closed without producing
// a report; the UI skips the report screen in that case.
func (ch *ChatHandler) Exit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ch.chatService.ExitSession(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadGateway), "exit_failed", err)
		return
	}
	if result.Report == nil && len(result.SavedVocab) == 0 {
		response.RespondNoContent(c)
		return
	}
	response.RespondOK(c, result)
}
