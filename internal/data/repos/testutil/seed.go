package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/domain/feedback"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: "u-" + uuid.NewString()[:8],
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedVocab(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, word, meaning string) *types.VocabularyEntry {
	tb.Helper()
	v := &types.VocabularyEntry{
		ID:      uuid.New(),
		UserID:  userID,
		Word:    word,
		WordKey: types.NormalizeWordKey(word),
		Meaning: meaning,
		Source:  types.VocabSourceManual,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed vocab: %v", err)
	}
	return v
}

func SeedDetail(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, sessionID string, score int, cats []types.Category) *types.FeedbackDetail {
	tb.Helper()
	grammar := "watch your tense"
	d := &types.FeedbackDetail{
		ID:              uuid.New(),
		UserID:          userID,
		SessionID:       sessionID,
		UserMessage:     "I want pasta please",
		GrammarFeedback: &grammar,
		Score:           score,
		Level:           feedback.LevelNeutral,
		Categories:      types.MarshalCategories(cats),
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed detail: %v", err)
	}
	return d
}

func SeedReport(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, sessionID, topic string, date time.Time) *types.FeedbackReport {
	tb.Helper()
	r := &types.FeedbackReport{
		ID:        uuid.New(),
		UserID:    userID,
		SessionID: sessionID,
		Date:      date,
		Topic:     topic,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed report: %v", err)
	}
	return r
}

func PtrString(v string) *string { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
