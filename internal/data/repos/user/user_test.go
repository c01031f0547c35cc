package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/testutil"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	seeded := testutil.SeedUser(t, ctx, tx, "yerin@example.com")

	users, err := repo.GetByIDs(ctx, tx, []uuid.UUID{seeded.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(users) != 1 || users[0].Email != "yerin@example.com" {
		t.Fatalf("users = %+v", users)
	}

	users, err = repo.GetByEmails(ctx, tx, []string{"yerin@example.com"})
	if err != nil {
		t.Fatalf("GetByEmails: %v", err)
	}
	if len(users) != 1 || users[0].ID != seeded.ID {
		t.Fatalf("users by email = %+v", users)
	}
}

func TestUserRepoExistenceChecks(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	seeded := testutil.SeedUser(t, ctx, tx, "taken@example.com")

	exists, err := repo.EmailExists(ctx, tx, "taken@example.com")
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Error("expected email to exist")
	}

	exists, err = repo.UsernameExists(ctx, tx, seeded.Username)
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Error("expected username to exist")
	}

	exists, err = repo.EmailExists(ctx, tx, "free@example.com")
	if err != nil {
		t.Fatalf("EmailExists free: %v", err)
	}
	if exists {
		t.Error("unexpected email hit")
	}
}

func TestUserRepoUpdateFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	seeded := testutil.SeedUser(t, ctx, tx, "update@example.com")

	if err := repo.UpdateFields(ctx, tx, seeded.ID, map[string]any{"avatar_url": "/media/avatar/x.png"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	users, err := repo.GetByIDs(ctx, tx, []uuid.UUID{seeded.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if users[0].AvatarURL != "/media/avatar/x.png" {
		t.Errorf("avatar url = %q", users[0].AvatarURL)
	}
}
