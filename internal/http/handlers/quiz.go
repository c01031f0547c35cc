package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yerinchoi/lingotalk-backend/internal/http/response"
	"github.com/yerinchoi/lingotalk-backend/internal/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) Build(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	questions, err := qh.quizService.BuildQuiz(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "quiz_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"questions": questions})
}

func (qh *QuizHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Answers []services.QuizAnswer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := qh.quizService.SubmitAttempt(c.Request.Context(), userID, req.Answers)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusBadRequest), "submit_failed", err)
		return
	}
	response.RespondOK(c, result)
}

func (qh *QuizHandler) Best(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	best, err := qh.quizService.BestPercent(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "best_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"best_percent": best})
}
