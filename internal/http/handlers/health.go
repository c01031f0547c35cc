package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yerinchoi/lingotalk-backend/internal/http/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (hh *HealthHandler) Healthcheck(c *gin.Context) {
	response.RespondOK(c, gin.H{"status": "ok"})
}
