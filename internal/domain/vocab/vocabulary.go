package vocab

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SourceManual    = "manual"
	SourceSuggested = "suggested"
)

// VocabularyEntry is one word in a user's personal word list. WordKey is the
// lowercase dedup key; (user_id, word_key) is unique.
type VocabularyEntry struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vocab_user_word,priority:1;column:user_id" json:"user_id"`
	Word    string    `gorm:"not null;column:word" json:"word"`
	WordKey string    `gorm:"not null;uniqueIndex:idx_vocab_user_word,priority:2;column:word_key" json:"-"`

	// Korean gloss. Empty string means "not provided yet".
	Meaning string  `gorm:"column:meaning" json:"meaning"`
	Example *string `gorm:"type:text;column:example" json:"example,omitempty"`

	Known  bool   `gorm:"not null;default:false;column:known" json:"known"`
	Source string `gorm:"not null;default:manual;column:source" json:"source"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (VocabularyEntry) TableName() string { return "vocabulary_entry" }

// NormalizeWordKey produces the case-insensitive dedup key for a word.
func NormalizeWordKey(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
