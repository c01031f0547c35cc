package quiz

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/testutil"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
)

func TestQuizQuestionRepoRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewQuizQuestionRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "quiz@example.com")
	q := &types.QuizQuestion{
		ID:     uuid.New(),
		UserID: user.ID,
		Kind:   types.QuizKindChoice,
		Prompt: "What does 'reservation' mean?",
		Answer: "예약",
	}
	if _, err := repo.Create(ctx, tx, []*types.QuizQuestion{q}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{q.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Answer != "예약" {
		t.Fatalf("questions = %+v", got)
	}
}

func TestQuizAttemptRepoBestPercent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewQuizAttemptRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "attempts@example.com")

	best, err := repo.BestPercent(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("BestPercent empty: %v", err)
	}
	if best != 0 {
		t.Errorf("best = %d, want 0 with no attempts", best)
	}

	for _, p := range []int{40, 90, 70} {
		attempt := &types.QuizAttempt{
			ID:      uuid.New(),
			UserID:  user.ID,
			Score:   p / 10,
			Total:   10,
			Percent: p,
		}
		if _, err := repo.Create(ctx, tx, attempt); err != nil {
			t.Fatalf("Create attempt: %v", err)
		}
	}

	best, err = repo.BestPercent(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("BestPercent: %v", err)
	}
	if best != 90 {
		t.Errorf("best = %d, want 90", best)
	}
}
