package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yerinchoi/lingotalk-backend/internal/http/response"
	"github.com/yerinchoi/lingotalk-backend/internal/services"
)

const maxAudioUploadBytes = 10 << 20

type VoiceHandler struct {
	chatService services.ChatService
}

func NewVoiceHandler(chatService services.ChatService) *VoiceHandler {
	return &VoiceHandler{chatService: chatService}
}

// Send accepts a multipart form with the recorded audio clip and forwards
// the transcript through the same turn pipeline as a typed message.
func (vh *VoiceHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	sessionID := c.PostForm("session_id")
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUploadBytes))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "read_failed", err)
		return
	}
	mimeType := header.Header.Get("Content-Type")
	languageCode := c.PostForm("language_code")

	result, err := vh.chatService.SendVoice(c.Request.Context(), userID, sessionID, audio, mimeType, languageCode)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadGateway), "voice_failed", err)
		return
	}
	response.RespondOK(c, result)
}
