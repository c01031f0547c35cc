package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yerinchoi/lingotalk-backend/internal/clients/aiproxy"
	"github.com/yerinchoi/lingotalk-backend/internal/clients/redis"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
)

type fakeAIClient struct {
	reply *aiproxy.TurnReply
	sent  []aiproxy.TurnRequest
}

func (f *fakeAIClient) Start(ctx context.Context, topic, aiRole, userRole string) error { return nil }
func (f *fakeAIClient) Send(ctx context.Context, req aiproxy.TurnRequest) (*aiproxy.TurnReply, error) {
	f.sent = append(f.sent, req)
	return f.reply, nil
}

type fakeFeedbackService struct {
	saved     int
	finalized []string
	report    *types.FeedbackReport
}

func (f *fakeFeedbackService) SaveTurnFeedback(ctx context.Context, userID uuid.UUID, sessionID, userMessage string, reply *aiproxy.TurnReply) (*types.FeedbackDetail, error) {
	f.saved++
	return nil, nil
}
func (f *fakeFeedbackService) SaveDetail(ctx context.Context, userID uuid.UUID, in DetailInput) (*types.FeedbackDetail, error) {
	return nil, nil
}

func (f *fakeFeedbackService) FinalizeSession(ctx context.Context, userID uuid.UUID, sessionID, topic string) (*types.FeedbackReport, error) {
	f.finalized = append(f.finalized, sessionID)
	if f.report == nil {
		return nil, ErrNoDetails
	}
	return f.report, nil
}
func (f *fakeFeedbackService) ReportDates(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return nil, nil
}
func (f *fakeFeedbackService) ReportsByDate(ctx context.Context, userID uuid.UUID, date string) ([]*types.FeedbackReport, error) {
	return nil, nil
}
func (f *fakeFeedbackService) ReportDetails(ctx context.Context, userID, reportID uuid.UUID) (*types.FeedbackReport, []*types.FeedbackDetail, error) {
	return nil, nil, nil
}

type fakeVocabService struct {
	merged []VocabCandidate
}

func (f *fakeVocabService) List(ctx context.Context, userID uuid.UUID) ([]*types.VocabularyEntry, error) {
	return nil, nil
}
func (f *fakeVocabService) Create(ctx context.Context, userID uuid.UUID, cand VocabCandidate) (*types.VocabularyEntry, error) {
	return nil, nil
}
func (f *fakeVocabService) Update(ctx context.Context, userID, entryID uuid.UUID, update VocabUpdate) (*types.VocabularyEntry, error) {
	return nil, nil
}
func (f *fakeVocabService) Delete(ctx context.Context, userID, entryID uuid.UUID) error { return nil }
func (f *fakeVocabService) BulkMerge(ctx context.Context, userID uuid.UUID, cands []VocabCandidate) ([]*types.VocabularyEntry, error) {
	f.merged = append(f.merged, cands...)
	return []*types.VocabularyEntry{}, nil
}

func newChatFixture(t *testing.T, reply *aiproxy.TurnReply) (ChatService, *fakeAIClient, *fakeFeedbackService, *fakeVocabService) {
	t.Helper()
	log := testLogger(t)

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := redis.NewSessionStoreWithClient(log, rdb, time.Hour)

	t.Setenv("TOPIC_ROLES_PATH", "")
	topics, err := NewTopicService(log)
	if err != nil {
		t.Fatalf("NewTopicService: %v", err)
	}

	ai := &fakeAIClient{reply: reply}
	fb := &fakeFeedbackService{}
	vs := &fakeVocabService{}
	cs := NewChatService(log, ai, store, nil, topics, fb, vs)
	return cs, ai, fb, vs
}

func TestChatSessionLifecycle(t *testing.T) {
	meaning := "예약"
	reply := &aiproxy.TurnReply{
		Reply:   "Sure, when would you like to book?",
		Score:   ptrFloat(88),
		Grammar: "minor article issue",
		Voca:    []aiproxy.VocaSuggestion{{Word: "reservation", MeaningKo: &meaning}},
	}
	cs, ai, fb, vs := newChatFixture(t, reply)

	userID := uuid.New()
	ctx := context.Background()

	state, err := cs.StartSession(ctx, userID, "hospital")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if state.Roles.AIRole != "doctor" || state.Roles.UserRole != "patient" {
		t.Errorf("roles = %+v", state.Roles)
	}

	result, err := cs.SendText(ctx, userID, state.SessionID, "I want to make a reservation")
	if err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if result.Level != types.LevelNeutral || result.Score != 88 {
		t.Errorf("turn result = score %d level %s", result.Score, result.Level)
	}
	if len(ai.sent) != 1 || ai.sent[0].AIRole != "doctor" {
		t.Errorf("proxy request = %+v", ai.sent)
	}
	if fb.saved != 1 {
		t.Errorf("feedback saved %d times", fb.saved)
	}
	if len(result.Voca) != 1 || result.Voca[0].Word != "reservation" {
		t.Errorf("voca = %+v", result.Voca)
	}

	// Same suggestion on a later turn must not queue twice.
	if result2, err := cs.SendText(ctx, userID, state.SessionID, "reservation please"); err != nil {
		t.Fatalf("SendText second: %v", err)
	} else if len(result2.Voca) != 0 {
		t.Errorf("duplicate suggestion queued: %+v", result2.Voca)
	}

	exit, err := cs.ExitSession(ctx, userID, state.SessionID)
	if err != nil {
		t.Fatalf("ExitSession: %v", err)
	}
	if exit.Report != nil {
		t.Errorf("expected nil report when no details, got %+v", exit.Report)
	}
	if len(vs.merged) != 1 || vs.merged[0].Word != "reservation" || vs.merged[0].Source != types.VocabSourceSuggested {
		t.Errorf("merged vocab = %+v", vs.merged)
	}

	// Session is gone after exit.
	if _, err := cs.SendText(ctx, userID, state.SessionID, "hello?"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after exit, got %v", err)
	}
}

func TestChatSessionOwnership(t *testing.T) {
	cs, _, _, _ := newChatFixture(t, &aiproxy.TurnReply{Reply: "hi"})
	ctx := context.Background()

	owner := uuid.New()
	state, err := cs.StartSession(ctx, owner, "restaurant")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	intruder := uuid.New()
	if _, err := cs.SendText(ctx, intruder, state.SessionID, "hello"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession for foreign user, got %v", err)
	}
	if _, err := cs.ExitSession(ctx, intruder, state.SessionID); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession for foreign exit, got %v", err)
	}
}

func TestPendingVocabIsSessionScoped(t *testing.T) {
	meaning := "주문하다"
	reply := &aiproxy.TurnReply{
		Reply: "What would you like to order?",
		Voca:  []aiproxy.VocaSuggestion{{Word: "order", MeaningKo: &meaning}},
	}
	cs, _, _, vs := newChatFixture(t, reply)
	ctx := context.Background()
	userID := uuid.New()

	s1, err := cs.StartSession(ctx, userID, "restaurant")
	if err != nil {
		t.Fatalf("StartSession s1: %v", err)
	}
	s2, err := cs.StartSession(ctx, userID, "hotel")
	if err != nil {
		t.Fatalf("StartSession s2: %v", err)
	}

	if _, err := cs.SendText(ctx, userID, s1.SessionID, "I'd like to order"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	// Exiting the other session must not carry the first session's queue.
	if _, err := cs.ExitSession(ctx, userID, s2.SessionID); err != nil {
		t.Fatalf("ExitSession s2: %v", err)
	}
	if len(vs.merged) != 0 {
		t.Fatalf("pending vocab leaked across sessions: %+v", vs.merged)
	}

	if _, err := cs.ExitSession(ctx, userID, s1.SessionID); err != nil {
		t.Fatalf("ExitSession s1: %v", err)
	}
	if len(vs.merged) != 1 || vs.merged[0].Word != "order" {
		t.Fatalf("merged vocab = %+v", vs.merged)
	}
}
