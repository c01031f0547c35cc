package chat

import "time"

// RolePair is the AI/user role assignment inferred from a roleplay topic.
type RolePair struct {
	AIRole   string `json:"ai_role" yaml:"ai_role"`
	UserRole string `json:"user_role" yaml:"user_role"`
}

// PendingVocab is one AI-suggested word queued on a session, bulk-saved into
// the vocabulary store at session exit.
type PendingVocab struct {
	Word      string  `json:"word"`
	MeaningKo *string `json:"meaningKo,omitempty"`
	Example   *string `json:"example,omitempty"`
}

// SessionState is the ephemeral roleplay state for one session. It lives in
// redis under the session id and is deleted at exit.
type SessionState struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Topic     string    `json:"topic"`
	Roles     RolePair  `json:"roles"`
	Turns     int       `json:"turns"`
	StartedAt time.Time `json:"started_at"`

	PendingVocab []PendingVocab `json:"pending_vocab,omitempty"`
}
