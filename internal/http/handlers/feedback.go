package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yerinchoi/lingotalk-backend/internal/http/response"
	"github.com/yerinchoi/lingotalk-backend/internal/services"
)

type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// SaveDetail stores one client-computed turn draft. A turn with no flagged
// category stores nothing and answers 204.
func (fh *FeedbackHandler) SaveDetail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req services.DetailInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	detail, err := fh.feedbackService.SaveDetail(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadRequest), "detail_failed", err)
		return
	}
	if detail == nil {
		response.RespondNoContent(c)
		return
	}
	response.RespondCreated(c, detail)
}

// Finalize rolls a session's drafts into a report. 204 means the session had
// nothing to report, which the caller must treat as success.
func (fh *FeedbackHandler) Finalize(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
		Topic     string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	report, err := fh.feedbackService.FinalizeSession(c.Request.Context(), userID, req.SessionID, req.Topic)
	if err != nil {
		if errors.Is(err, services.ErrNoDetails) {
			response.RespondNoContent(c)
			return
		}
		response.RespondError(c, statusFor(err, http.StatusBadRequest), "finalize_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"report_id": report.ID, "report": report})
}

func (fh *FeedbackHandler) ReportDates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	dates, err := fh.feedbackService.ReportDates(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "dates_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"dates": dates})
}

func (fh *FeedbackHandler) ReportsByDate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	date := c.Query("date")
	if date == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("date query parameter required"))
		return
	}
	reports, err := fh.feedbackService.ReportsByDate(c.Request.Context(), userID, date)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "reports_failed", err)
		return
	}
	response.RespondOK(c, reports)
}

func (fh *FeedbackHandler) ReportDetails(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	reportID, err := uuid.Parse(c.Query("reportId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("reportId query parameter required: %w", err))
		return
	}
	report, details, err := fh.feedbackService.ReportDetails(c.Request.Context(), userID, reportID)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "details_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"report": report, "details": details})
}
