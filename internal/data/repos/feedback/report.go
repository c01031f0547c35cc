package feedback

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type FeedbackReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, report *types.FeedbackReport) (*types.FeedbackReport, error)
	GetByUserIDOrderByDateDesc(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FeedbackReport, error)
	GetByUserIDAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, dayStart, dayEnd time.Time) ([]*types.FeedbackReport, error)
	GetByIDAndUserID(ctx context.Context, tx *gorm.DB, reportID, userID uuid.UUID) (*types.FeedbackReport, error)
}

type feedbackReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackReportRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackReportRepo {
	return &feedbackReportRepo{db: db, log: baseLog.With("repo", "FeedbackReportRepo")}
}

func (r *feedbackReportRepo) Create(ctx context.Context, tx *gorm.DB, report *types.FeedbackReport) (*types.FeedbackReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *feedbackReportRepo) GetByUserIDOrderByDateDesc(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FeedbackReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FeedbackReport
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *feedbackReportRepo) GetByUserIDAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, dayStart, dayEnd time.Time) ([]*types.FeedbackReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FeedbackReport
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *feedbackReportRepo) GetByIDAndUserID(ctx context.Context, tx *gorm.DB, reportID, userID uuid.UUID) (*types.FeedbackReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.FeedbackReport
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", reportID, userID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
