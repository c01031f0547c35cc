package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yerinchoi/lingotalk-backend/internal/http/response"
	"github.com/yerinchoi/lingotalk-backend/internal/services"
)

type VocabHandler struct {
	vocabService services.VocabService
}

func NewVocabHandler(vocabService services.VocabService) *VocabHandler {
	return &VocabHandler{vocabService: vocabService}
}

func (vh *VocabHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	entries, err := vh.vocabService.List(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, entries)
}

func (vh *VocabHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req services.VocabCandidate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := vh.vocabService.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadRequest), "create_failed", err)
		return
	}
	response.RespondCreated(c, entry)
}

func (vh *VocabHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.VocabUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := vh.vocabService.Update(c.Request.Context(), userID, entryID, req)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadRequest), "update_failed", err)
		return
	}
	response.RespondOK(c, entry)
}

func (vh *VocabHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := vh.vocabService.Delete(c.Request.Context(), userID, entryID); err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadRequest), "delete_failed", err)
		return
	}
	response.RespondNoContent(c)
}

func (vh *VocabHandler) BulkMerge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Words []services.VocabCandidate `json:"words"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entries, err := vh.vocabService.BulkMerge(c.Request.Context(), userID, req.Words)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "merge_failed", err)
		return
	}
	response.RespondOK(c, entries)
}
