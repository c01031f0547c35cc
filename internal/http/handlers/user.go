package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yerinchoi/lingotalk-backend/internal/http/response"
	"github.com/yerinchoi/lingotalk-backend/internal/services"
)

const maxAvatarUploadBytes = 5 << 20

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxAvatarUploadBytes))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "read_failed", err)
		return
	}

	user, err := uh.userService.UpdateAvatar(c.Request.Context(), userID, raw)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadRequest), "avatar_failed", err)
		return
	}
	response.RespondOK(c, user)
}
