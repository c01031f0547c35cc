package repos

import (
	"gorm.io/gorm"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/auth"
	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/feedback"
	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/quiz"
	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/user"
	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/vocab"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo
type PasswordResetTokenRepo = auth.PasswordResetTokenRepo

type VocabRepo = vocab.VocabRepo

type FeedbackDetailRepo = feedback.FeedbackDetailRepo
type FeedbackReportRepo = feedback.FeedbackReportRepo

type QuizQuestionRepo = quiz.QuizQuestionRepo
type QuizAttemptRepo = quiz.QuizAttemptRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }
func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}
func NewPasswordResetTokenRepo(db *gorm.DB, log *logger.Logger) PasswordResetTokenRepo {
	return auth.NewPasswordResetTokenRepo(db, log)
}
func NewVocabRepo(db *gorm.DB, log *logger.Logger) VocabRepo { return vocab.NewVocabRepo(db, log) }
func NewFeedbackDetailRepo(db *gorm.DB, log *logger.Logger) FeedbackDetailRepo {
	return feedback.NewFeedbackDetailRepo(db, log)
}
func NewFeedbackReportRepo(db *gorm.DB, log *logger.Logger) FeedbackReportRepo {
	return feedback.NewFeedbackReportRepo(db, log)
}
func NewQuizQuestionRepo(db *gorm.DB, log *logger.Logger) QuizQuestionRepo {
	return quiz.NewQuizQuestionRepo(db, log)
}
func NewQuizAttemptRepo(db *gorm.DB, log *logger.Logger) QuizAttemptRepo {
	return quiz.NewQuizAttemptRepo(db, log)
}
