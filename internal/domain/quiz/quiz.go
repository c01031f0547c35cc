package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	KindChoice = "choice"
	KindSpeech = "speech"
)

// QuizQuestion is a generated question a user answered at least once. Options
// is a JSON string array for choice questions and empty for speech ones.
type QuizQuestion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`

	Kind    string         `gorm:"not null;column:kind" json:"kind"`
	Prompt  string         `gorm:"type:text;not null;column:prompt" json:"prompt"`
	Options datatypes.JSON `gorm:"column:options" json:"options,omitempty"`
	Answer  string         `gorm:"not null;column:answer" json:"-"`

	// Entry the question was generated from, when vocabulary-derived.
	VocabularyEntryID *uuid.UUID `gorm:"type:uuid;column:vocabulary_entry_id" json:"vocabulary_entry_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (QuizQuestion) TableName() string { return "quiz_question" }

type QuizAttempt struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`

	Score   int `gorm:"not null;column:score" json:"score"`
	Total   int `gorm:"not null;column:total" json:"total"`
	Percent int `gorm:"not null;column:percent" json:"percent"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }
