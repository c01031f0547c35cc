package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
	"github.com/yerinchoi/lingotalk-backend/internal/services"
)

type Services struct {
	Avatar   services.AvatarService
	Auth     services.AuthService
	User     services.UserService
	Vocab    services.VocabService
	Topic    services.TopicService
	Feedback services.FeedbackService
	Chat     services.ChatService
	Quiz     services.QuizService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	avatarService, err := services.NewAvatarService(log, clients.Media)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}

	authService := services.NewAuthService(
		db, log,
		reposet.User,
		reposet.UserToken,
		reposet.PasswordResetToken,
		avatarService,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		cfg.ResetTokenTTL,
	)

	userService := services.NewUserService(db, log, reposet.User, avatarService)
	vocabService := services.NewVocabService(db, log, reposet.Vocab)

	topicService, err := services.NewTopicService(log)
	if err != nil {
		return Services{}, fmt.Errorf("init topic service: %w", err)
	}

	feedbackService := services.NewFeedbackService(db, log, reposet.FeedbackDetail, reposet.FeedbackReport)

	chatService := services.NewChatService(
		log,
		clients.AIProxy,
		clients.Sessions,
		clients.Transcriber,
		topicService,
		feedbackService,
		vocabService,
	)

	quizService := services.NewQuizService(db, log, reposet.QuizQuestion, reposet.QuizAttempt, reposet.Vocab)

	return Services{
		Avatar:   avatarService,
		Auth:     authService,
		User:     userService,
		Vocab:    vocabService,
		Topic:    topicService,
		Feedback: feedbackService,
		Chat:     chatService,
		Quiz:     quizService,
	}, nil
}
