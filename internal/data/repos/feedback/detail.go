package feedback

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type FeedbackDetailRepo interface {
	Create(ctx context.Context, tx *gorm.DB, details []*types.FeedbackDetail) ([]*types.FeedbackDetail, error)
	GetDraftsBySession(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sessionID string) ([]*types.FeedbackDetail, error)
	HasDraftsBySession(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sessionID string) (bool, error)
	GetByReportID(ctx context.Context, tx *gorm.DB, userID, reportID uuid.UUID) ([]*types.FeedbackDetail, error)
	AssignReportID(ctx context.Context, tx *gorm.DB, detailIDs []uuid.UUID, reportID uuid.UUID) error
}

type feedbackDetailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackDetailRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackDetailRepo {
	return &feedbackDetailRepo{db: db, log: baseLog.With("repo", "FeedbackDetailRepo")}
}

func (r *feedbackDetailRepo) Create(ctx context.Context, tx *gorm.DB, details []*types.FeedbackDetail) ([]*types.FeedbackDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(details) == 0 {
		return []*types.FeedbackDetail{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// GetDraftsBySession returns the session's details not yet attached to a
// report, oldest first.
func (r *feedbackDetailRepo) GetDraftsBySession(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sessionID string) ([]*types.FeedbackDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FeedbackDetail
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND session_id = ? AND report_id IS NULL", userID, sessionID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *feedbackDetailRepo) HasDraftsBySession(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sessionID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.FeedbackDetail{}).
		Where("user_id = ? AND session_id = ? AND report_id IS NULL", userID, sessionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *feedbackDetailRepo) GetByReportID(ctx context.Context, tx *gorm.DB, userID, reportID uuid.UUID) ([]*types.FeedbackDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FeedbackDetail
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND report_id = ?", userID, reportID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *feedbackDetailRepo) AssignReportID(ctx context.Context, tx *gorm.DB, detailIDs []uuid.UUID, reportID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(detailIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.FeedbackDetail{}).
		Where("id IN ?", detailIDs).
		Update("report_id", reportID).Error
}
