package feedback

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FeedbackDetail is one conversation turn's stored feedback. Rows exist only
// for turns where at least one category was flagged; ReportID stays null
// until the session is finalized into a report.
type FeedbackDetail struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	SessionID string     `gorm:"index;not null;column:session_id" json:"session_id"`
	ReportID  *uuid.UUID `gorm:"type:uuid;index;column:report_id" json:"report_id,omitempty"`

	UserMessage string `gorm:"type:text;not null;column:user_message" json:"user_message"`

	GrammarFeedback    *string `gorm:"type:text;column:grammar_feedback" json:"grammar_feedback,omitempty"`
	VocabularyFeedback *string `gorm:"type:text;column:vocabulary_feedback" json:"vocabulary_feedback,omitempty"`
	Suggestion         *string `gorm:"type:text;column:suggestion" json:"suggestion,omitempty"`

	Score      int            `gorm:"not null;column:score" json:"score"`
	Level      string         `gorm:"column:level" json:"level"`
	Categories datatypes.JSON `gorm:"column:categories" json:"categories"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (FeedbackDetail) TableName() string { return "feedback_detail" }

// CategorySet decodes the stored JSON category array. A malformed or empty
// column decodes to an empty set.
func (d *FeedbackDetail) CategorySet() []Category {
	var raw []Category
	if len(d.Categories) == 0 {
		return raw
	}
	if err := json.Unmarshal(d.Categories, &raw); err != nil {
		return nil
	}
	return raw
}

// HasCategory reports whether the detail is flagged with c.
func (d *FeedbackDetail) HasCategory(c Category) bool {
	for _, got := range d.CategorySet() {
		if got == c {
			return true
		}
	}
	return false
}

// MarshalCategories encodes a category set for storage.
func MarshalCategories(cats []Category) datatypes.JSON {
	if cats == nil {
		cats = []Category{}
	}
	raw, err := json.Marshal(cats)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
