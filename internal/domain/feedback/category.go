package feedback

// Category tags one axis of feedback on a conversation turn.
type Category string

const (
	CategoryGrammar      Category = "GRAMMAR"
	CategoryVocabulary   Category = "VOCABULARY"
	CategoryConversation Category = "CONVERSATION"
)

// Levels shown to the learner while chatting (per-turn).
const (
	LevelPerfect = "perfect"
	LevelNeutral = "neutral"
	LevelNeeds   = "needs"
)

// Levels used by the report viewer when a stored row has no level.
const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelNeedsWork = "needs-work"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryGrammar, CategoryVocabulary, CategoryConversation:
		return true
	}
	return false
}
