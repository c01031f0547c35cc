package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type PasswordResetTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *types.PasswordResetToken) (*types.PasswordResetToken, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.PasswordResetToken, error)
	MarkUsed(ctx context.Context, tx *gorm.DB, token string, usedAt time.Time) error
}

type passwordResetTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPasswordResetTokenRepo(db *gorm.DB, baseLog *logger.Logger) PasswordResetTokenRepo {
	return &passwordResetTokenRepo{db: db, log: baseLog.With("repo", "PasswordResetTokenRepo")}
}

func (r *passwordResetTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.PasswordResetToken) (*types.PasswordResetToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

func (r *passwordResetTokenRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.PasswordResetToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.PasswordResetToken
	err := transaction.WithContext(ctx).
		Where("token = ?", token).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *passwordResetTokenRepo) MarkUsed(ctx context.Context, tx *gorm.DB, token string, usedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.PasswordResetToken{}).
		Where("token = ?", token).
		Update("used_at", usedAt).Error
}
