package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
	"github.com/yerinchoi/lingotalk-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlerset Handlers, middlewareset Middleware, clients Clients) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:             log,
		AuthMiddleware:  middlewareset.Auth,
		HealthHandler:   handlerset.Health,
		AuthHandler:     handlerset.Auth,
		UserHandler:     handlerset.User,
		VocabHandler:    handlerset.Vocab,
		ChatHandler:     handlerset.Chat,
		VoiceHandler:    handlerset.Voice,
		FeedbackHandler: handlerset.Feedback,
		QuizHandler:     handlerset.Quiz,
		MediaDir:        clients.Media.Root(),
	})
}
