package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

func newTestStore(t *testing.T) (SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewSessionStoreWithClient(log, rdb, time.Hour), mr
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	meaning := "주문하다"
	state := &types.SessionState{
		SessionID: "abc123",
		UserID:    "user-1",
		Topic:     "레스토랑",
		Roles:     types.RolePair{AIRole: "waiter", UserRole: "customer"},
		Turns:     2,
		StartedAt: time.Now().UTC().Truncate(time.Second),
		PendingVocab: []types.PendingVocab{
			{Word: "order", MeaningKo: &meaning},
		},
	}
	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatalf("Get: expected state")
	}
	if got.Topic != "레스토랑" || got.Roles.AIRole != "waiter" || got.Turns != 2 {
		t.Fatalf("unexpected state: %+v", got)
	}
	if len(got.PendingVocab) != 1 || got.PendingVocab[0].Word != "order" {
		t.Fatalf("pending vocab lost: %+v", got.PendingVocab)
	}
}

func TestSessionStoreMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown session, got %+v", got)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	state := &types.SessionState{SessionID: "exp", UserID: "u", Topic: "hotel"}
	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "exp")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired session to be gone")
	}
}

func TestSessionStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, &types.SessionState{SessionID: "gone", UserID: "u"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := store.Get(ctx, "gone")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected deleted session to be gone")
	}
}
