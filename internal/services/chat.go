package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yerinchoi/lingotalk-backend/internal/clients/aiproxy"
	"github.com/yerinchoi/lingotalk-backend/internal/clients/gcp"
	"github.com/yerinchoi/lingotalk-backend/internal/clients/redis"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/ctxutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

// TurnResult is what one chat turn sends back to the UI: the AI's reply plus
// the feedback panel contents for that turn.
type TurnResult struct {
	SessionID  string                `json:"session_id"`
	Transcript string                `json:"transcript,omitempty"`
	Reply      string                `json:"reply"`
	Score      int                   `json:"score"`
	Level      string                `json:"level"`
	Grammar    string                `json:"grammar,omitempty"`
	Vocabulary string                `json:"vocabulary,omitempty"`
	Suggestion string                `json:"suggestion,omitempty"`
	Categories []types.Category      `json:"categories"`
	Voca       []types.PendingVocab  `json:"voca,omitempty"`
	Detail     *types.FeedbackDetail `json:"detail,omitempty"`
}

// ExitResult is the session wrap-up: the finalized report, if the session
// produced any feedback, and the vocabulary entries merged from the
// session's pending suggestions.
type ExitResult struct {
	Report     *types.FeedbackReport    `json:"report,omitempty"`
	SavedVocab []*types.VocabularyEntry `json:"saved_vocab"`
}

type ChatService interface {
	StartSession(ctx context.Context, userID uuid.UUID, topic string) (*types.SessionState, error)
	SendText(ctx context.Context, userID uuid.UUID, sessionID, message string) (*TurnResult, error)
	SendVoice(ctx context.Context, userID uuid.UUID, sessionID string, audio []byte, mimeType, languageCode string) (*TurnResult, error)
	ExitSession(ctx context.Context, userID uuid.UUID, sessionID string) (*ExitResult, error)
}

type chatService struct {
	log             *logger.Logger
	aiClient        aiproxy.Client
	sessions        redis.SessionStore
	transcriber     gcp.Transcriber
	topicService    TopicService
	feedbackService FeedbackService
	vocabService    VocabService
}

func NewChatService(
	log *logger.Logger,
	aiClient aiproxy.Client,
	sessions redis.SessionStore,
	transcriber gcp.Transcriber,
	topicService TopicService,
	feedbackService FeedbackService,
	vocabService VocabService,
) ChatService {
	serviceLog := log.With("service", "ChatService")
	return &chatService{
		log:             serviceLog,
		aiClient:        aiClient,
		sessions:        sessions,
		transcriber:     transcriber,
		topicService:    topicService,
		feedbackService: feedbackService,
		vocabService:    vocabService,
	}
}

func (cs *chatService) StartSession(ctx context.Context, userID uuid.UUID, topic string) (*types.SessionState, error) {
	ctx = ctxutil.Default(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic required")
	}

	roles := cs.topicService.RolesForTopic(topic)
	// The start notification is best-effort; the proxy rebuilds context on
	// the first turn anyway.
	if err := cs.aiClient.Start(ctx, topic, roles.AIRole, roles.UserRole); err != nil {
		cs.log.Warn("Roleplay start notification failed", "topic", topic, "error", err)
	}

	state := &types.SessionState{
		SessionID: uuid.New().String(),
		UserID:    userID.String(),
		Topic:     topic,
		Roles:     roles,
		StartedAt: time.Now(),
	}
	if err := cs.sessions.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	cs.log.Info("Session started", "session_id", state.SessionID, "topic", topic, "ai_role", roles.AIRole)
	return state, nil
}

func (cs *chatService) SendText(ctx context.Context, userID uuid.UUID, sessionID, message string) (*TurnResult, error) {
	ctx = ctxutil.Default(ctx)

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message required")
	}

	state, err := cs.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	reply, err := cs.aiClient.Send(ctx, aiproxy.TurnRequest{
		Topic:    state.Topic,
		AIRole:   state.Roles.AIRole,
		UserRole: state.Roles.UserRole,
		Message:  message,
	})
	if err != nil {
		return nil, fmt.Errorf("send turn: %w", err)
	}

	detail, err := cs.feedbackService.SaveTurnFeedback(ctx, userID, sessionID, message, reply)
	if err != nil {
		return nil, err
	}

	// Queue AI-suggested words on the session; they become vocabulary
	// entries only if the user finishes the session.
	suggested := appendPendingVocab(state, reply.Voca)

	state.Turns++
	if err := cs.sessions.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	score := ClampScore(reply.Score)
	return &TurnResult{
		SessionID:  sessionID,
		Reply:      reply.Reply,
		Score:      score,
		Level:      TurnLevel(score),
		Grammar:    reply.Grammar,
		Vocabulary: reply.Vocabulary,
		Suggestion: reply.Suggestion,
		Categories: FlaggedCategories(reply),
		Voca:       suggested,
		Detail:     detail,
	}, nil
}

func (cs *chatService) SendVoice(ctx context.Context, userID uuid.UUID, sessionID string, audio []byte, mimeType, languageCode string) (*TurnResult, error) {
	ctx = ctxutil.Default(ctx)

	if cs.transcriber == nil {
		return nil, fmt.Errorf("voice input is not configured")
	}

	transcript, err := cs.transcriber.TranscribeBytes(ctx, audio, mimeType, languageCode)
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}
	if strings.TrimSpace(transcript.Text) == "" {
		return nil, fmt.Errorf("could not understand the audio")
	}

	result, err := cs.SendText(ctx, userID, sessionID, transcript.Text)
	if err != nil {
		return nil, err
	}
	result.Transcript = transcript.Text
	return result, nil
}

func (cs *chatService) ExitSession(ctx context.Context, userID uuid.UUID, sessionID string) (*ExitResult, error) {
	ctx = ctxutil.Default(ctx)

	state, err := cs.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	out := &ExitResult{SavedVocab: []*types.VocabularyEntry{}}

	report, err := cs.feedbackService.FinalizeSession(ctx, userID, sessionID, state.Topic)
	if err != nil && !errors.Is(err, ErrNoDetails) {
		return nil, err
	}
	out.Report = report

	if len(state.PendingVocab) > 0 {
		cands := make([]VocabCandidate, 0, len(state.PendingVocab))
		for _, pv := range state.PendingVocab {
			meaning := ""
			if pv.MeaningKo != nil {
				meaning = *pv.MeaningKo
			}
			cands = append(cands, VocabCandidate{
				Word:    pv.Word,
				Meaning: meaning,
				Example: pv.Example,
				Source:  types.VocabSourceSuggested,
			})
		}
		saved, err := cs.vocabService.BulkMerge(ctx, userID, cands)
		if err != nil {
			// Vocabulary save failures should not lose the report.
			cs.log.Warn("Failed to merge session vocabulary", "session_id", sessionID, "error", err)
		} else {
			out.SavedVocab = saved
		}
	}

	if err := cs.sessions.Delete(ctx, sessionID); err != nil {
		cs.log.Warn("Failed to delete session state", "session_id", sessionID, "error", err)
	}
	cs.log.Info("Session exited", "session_id", sessionID, "turns", state.Turns, "has_report", out.Report != nil)
	return out, nil
}

func (cs *chatService) ownedSession(ctx context.Context, userID uuid.UUID, sessionID string) (*types.SessionState, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id required")
	}
	state, err := cs.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if state == nil || state.UserID != userID.String() {
		return nil, ErrNoSession
	}
	return state, nil
}

// appendPendingVocab adds this turn's suggestions to the session state,
// skipping words already queued, and returns what was newly queued.
func appendPendingVocab(state *types.SessionState, voca []aiproxy.VocaSuggestion) []types.PendingVocab {
	queued := map[string]bool{}
	for _, pv := range state.PendingVocab {
		queued[types.NormalizeWordKey(pv.Word)] = true
	}

	added := []types.PendingVocab{}
	for _, v := range voca {
		key := types.NormalizeWordKey(v.Word)
		if key == "" || queued[key] {
			continue
		}
		queued[key] = true
		pv := types.PendingVocab{Word: v.Word, MeaningKo: v.MeaningKo, Example: v.Example}
		state.PendingVocab = append(state.PendingVocab, pv)
		added = append(added, pv)
	}
	return added
}
