package vocab

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/testutil"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
)

func TestVocabRepoCreateAndList(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewVocabRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "vocab@example.com")
	testutil.SeedVocab(t, ctx, tx, user.ID, "reservation", "예약")
	testutil.SeedVocab(t, ctx, tx, user.ID, "order", "주문하다")

	entries, err := repo.ListByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	other := testutil.SeedUser(t, ctx, tx, "other@example.com")
	entries, err = repo.ListByUserID(ctx, tx, other.ID)
	if err != nil {
		t.Fatalf("ListByUserID other: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("other user sees %d entries", len(entries))
	}
}

func TestVocabRepoWordKeyExists(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewVocabRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "exists@example.com")
	testutil.SeedVocab(t, ctx, tx, user.ID, "Reservation", "예약")

	exists, err := repo.WordKeyExists(ctx, tx, user.ID, "reservation")
	if err != nil {
		t.Fatalf("WordKeyExists: %v", err)
	}
	if !exists {
		t.Error("expected word key to exist")
	}

	exists, err = repo.WordKeyExists(ctx, tx, user.ID, "luggage")
	if err != nil {
		t.Fatalf("WordKeyExists missing: %v", err)
	}
	if exists {
		t.Error("unexpected word key hit")
	}
}

func TestVocabRepoUniqueWordPerUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewVocabRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "unique@example.com")
	testutil.SeedVocab(t, ctx, tx, user.ID, "menu", "메뉴")

	dup := &types.VocabularyEntry{
		ID:      uuid.New(),
		UserID:  user.ID,
		Word:    "Menu",
		WordKey: types.NormalizeWordKey("Menu"),
	}
	if _, err := repo.Create(ctx, tx, []*types.VocabularyEntry{dup}); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestVocabRepoGetByWordKeys(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewVocabRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "keys@example.com")
	testutil.SeedVocab(t, ctx, tx, user.ID, "reservation", "예약")
	testutil.SeedVocab(t, ctx, tx, user.ID, "order", "주문하다")

	entries, err := repo.GetByWordKeys(ctx, tx, user.ID, []string{"reservation", "missing"})
	if err != nil {
		t.Fatalf("GetByWordKeys: %v", err)
	}
	if len(entries) != 1 || entries[0].WordKey != "reservation" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestVocabRepoUpdateAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewVocabRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "upd@example.com")
	entry := testutil.SeedVocab(t, ctx, tx, user.ID, "luggage", "")

	if err := repo.UpdateFields(ctx, tx, entry.ID, map[string]any{"meaning": "짐", "known": true}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, err := repo.GetByIDAndUserID(ctx, tx, entry.ID, user.ID)
	if err != nil {
		t.Fatalf("GetByIDAndUserID: %v", err)
	}
	if got == nil || got.Meaning != "짐" || !got.Known {
		t.Fatalf("entry after update = %+v", got)
	}

	if err := repo.Delete(ctx, tx, entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = repo.GetByIDAndUserID(ctx, tx, entry.ID, user.ID)
	if err != nil {
		t.Fatalf("GetByIDAndUserID after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("entry still present: %+v", got)
	}
}
