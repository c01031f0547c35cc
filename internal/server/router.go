package server

import (
	"github.com/gin-gonic/gin"

	"github.com/yerinchoi/lingotalk-backend/internal/http/handlers"
	"github.com/yerinchoi/lingotalk-backend/internal/http/middleware"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *middleware.AuthMiddleware

	HealthHandler   *handlers.HealthHandler
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	VocabHandler    *handlers.VocabHandler
	ChatHandler     *handlers.ChatHandler
	VoiceHandler    *handlers.VoiceHandler
	FeedbackHandler *handlers.FeedbackHandler
	QuizHandler     *handlers.QuizHandler

	// Local directory served at /media (avatars).
	MediaDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.Healthcheck)
	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/forgot-password", cfg.AuthHandler.ForgotPassword)
		auth.POST("/reset-password", cfg.AuthHandler.ResetPassword)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	protected.GET("/auth/me", cfg.AuthHandler.Me)
	protected.PUT("/auth/me", cfg.AuthHandler.UpdateMe)

	protected.PUT("/users/me/avatar", cfg.UserHandler.UpdateAvatar)

	vocab := protected.Group("/vocab")
	{
		vocab.GET("", cfg.VocabHandler.List)
		vocab.POST("", cfg.VocabHandler.Create)
		vocab.POST("/bulk", cfg.VocabHandler.BulkMerge)
		vocab.PATCH("/:id", cfg.VocabHandler.Update)
		vocab.DELETE("/:id", cfg.VocabHandler.Delete)
	}

	chat := protected.Group("/chat")
	{
		chat.POST("/start", cfg.ChatHandler.Start)
		chat.POST("/send", cfg.ChatHandler.Send)
		chat.POST("/exit", cfg.ChatHandler.Exit)
	}

	protected.POST("/voice/send", cfg.VoiceHandler.Send)

	feedback := protected.Group("/feedback")
	{
		feedback.POST("/detail", cfg.FeedbackHandler.SaveDetail)
		feedback.POST("/finalize", cfg.FeedbackHandler.Finalize)
		feedback.GET("/report-dates", cfg.FeedbackHandler.ReportDates)
		feedback.GET("/reports", cfg.FeedbackHandler.ReportsByDate)
		feedback.GET("/details", cfg.FeedbackHandler.ReportDetails)
	}

	quiz := protected.Group("/quiz")
	{
		quiz.GET("", cfg.QuizHandler.Build)
		quiz.POST("/attempts", cfg.QuizHandler.Submit)
		quiz.GET("/best", cfg.QuizHandler.Best)
	}

	return router
}
