package feedback

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackReport is the dated aggregation of one finished session. Averages
// are per-category and nullable: a session with no vocabulary-flagged turns
// has AvgVocabulary == nil. Immutable after finalize.
type FeedbackReport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	SessionID string    `gorm:"index;not null;column:session_id" json:"session_id"`

	Date  time.Time `gorm:"not null;index;column:date" json:"date"`
	Topic string    `gorm:"not null;column:topic" json:"topic"`

	AvgGrammar      *float64 `gorm:"column:avg_grammar" json:"avg_grammar,omitempty"`
	AvgVocabulary   *float64 `gorm:"column:avg_vocabulary" json:"avg_vocabulary,omitempty"`
	AvgConversation *float64 `gorm:"column:avg_conversation" json:"avg_conversation,omitempty"`
	AvgScore        int      `gorm:"not null;column:avg_score" json:"avg_score"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (FeedbackReport) TableName() string { return "feedback_report" }
