package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/ctxutil"
	"github.com/yerinchoi/lingotalk-backend/internal/services"
)

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return rd.UserID, true
}

// statusFor maps service sentinel errors onto HTTP statuses; anything
// unrecognized is the caller's fallback.
func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateWord):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidResetToken):
		return http.StatusBadRequest
	}
	return fallback
}
