package vocab

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type VocabRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.VocabularyEntry) ([]*types.VocabularyEntry, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VocabularyEntry, error)
	GetByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.VocabularyEntry, error)
	GetByWordKeys(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordKeys []string) ([]*types.VocabularyEntry, error)
	WordKeyExists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordKey string) (bool, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type vocabRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVocabRepo(db *gorm.DB, baseLog *logger.Logger) VocabRepo {
	return &vocabRepo{db: db, log: baseLog.With("repo", "VocabRepo")}
}

func (r *vocabRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.VocabularyEntry) ([]*types.VocabularyEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(entries) == 0 {
		return []*types.VocabularyEntry{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *vocabRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VocabularyEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VocabularyEntry
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabRepo) GetByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.VocabularyEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.VocabularyEntry
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *vocabRepo) GetByWordKeys(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordKeys []string) ([]*types.VocabularyEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VocabularyEntry
	if len(wordKeys) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND word_key IN ?", userID, wordKeys).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabRepo) WordKeyExists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordKey string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.VocabularyEntry{}).
		Where("user_id = ? AND word_key = ?", userID, wordKey).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *vocabRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.VocabularyEntry{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *vocabRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.VocabularyEntry{}).Error
}
