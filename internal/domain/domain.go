package domain

import (
	"github.com/yerinchoi/lingotalk-backend/internal/domain/auth"
	"github.com/yerinchoi/lingotalk-backend/internal/domain/chat"
	"github.com/yerinchoi/lingotalk-backend/internal/domain/feedback"
	"github.com/yerinchoi/lingotalk-backend/internal/domain/quiz"
	"github.com/yerinchoi/lingotalk-backend/internal/domain/user"
	"github.com/yerinchoi/lingotalk-backend/internal/domain/vocab"
)

type User = user.User

type UserToken = auth.UserToken
type PasswordResetToken = auth.PasswordResetToken

type VocabularyEntry = vocab.VocabularyEntry

type FeedbackDetail = feedback.FeedbackDetail
type FeedbackReport = feedback.FeedbackReport
type Category = feedback.Category

type QuizQuestion = quiz.QuizQuestion
type QuizAttempt = quiz.QuizAttempt

type RolePair = chat.RolePair
type PendingVocab = chat.PendingVocab
type SessionState = chat.SessionState

const (
	CategoryGrammar      = feedback.CategoryGrammar
	CategoryVocabulary   = feedback.CategoryVocabulary
	CategoryConversation = feedback.CategoryConversation

	LevelPerfect = feedback.LevelPerfect
	LevelNeutral = feedback.LevelNeutral
	LevelNeeds   = feedback.LevelNeeds

	LevelExcellent = feedback.LevelExcellent
	LevelGood      = feedback.LevelGood
	LevelNeedsWork = feedback.LevelNeedsWork

	VocabSourceManual    = vocab.SourceManual
	VocabSourceSuggested = vocab.SourceSuggested

	QuizKindChoice = quiz.KindChoice
	QuizKindSpeech = quiz.KindSpeech
)

var MarshalCategories = feedback.MarshalCategories
var ValidCategory = feedback.ValidCategory
var NormalizeWordKey = vocab.NormalizeWordKey
