package app

import (
	"gorm.io/gorm"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type Repos struct {
	User               repos.UserRepo
	UserToken          repos.UserTokenRepo
	PasswordResetToken repos.PasswordResetTokenRepo
	Vocab              repos.VocabRepo
	FeedbackDetail     repos.FeedbackDetailRepo
	FeedbackReport     repos.FeedbackReportRepo
	QuizQuestion       repos.QuizQuestionRepo
	QuizAttempt        repos.QuizAttemptRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		UserToken:          repos.NewUserTokenRepo(db, log),
		PasswordResetToken: repos.NewPasswordResetTokenRepo(db, log),
		Vocab:              repos.NewVocabRepo(db, log),
		FeedbackDetail:     repos.NewFeedbackDetailRepo(db, log),
		FeedbackReport:     repos.NewFeedbackReportRepo(db, log),
		QuizQuestion:       repos.NewQuizQuestionRepo(db, log),
		QuizAttempt:        repos.NewQuizAttemptRepo(db, log),
	}
}
