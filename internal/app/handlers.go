package app

import (
	"github.com/yerinchoi/lingotalk-backend/internal/http/handlers"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Vocab    *handlers.VocabHandler
	Chat     *handlers.ChatHandler
	Voice    *handlers.VoiceHandler
	Feedback *handlers.FeedbackHandler
	Quiz     *handlers.QuizHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   handlers.NewHealthHandler(),
		Auth:     handlers.NewAuthHandler(serviceset.Auth, serviceset.User),
		User:     handlers.NewUserHandler(serviceset.User),
		Vocab:    handlers.NewVocabHandler(serviceset.Vocab),
		Chat:     handlers.NewChatHandler(serviceset.Chat),
		Voice:    handlers.NewVoiceHandler(serviceset.Chat),
		Feedback: handlers.NewFeedbackHandler(serviceset.Feedback),
		Quiz:     handlers.NewQuizHandler(serviceset.Quiz),
	}
}
