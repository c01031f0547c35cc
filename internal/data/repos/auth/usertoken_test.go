package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/testutil"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
)

func seedToken(t *testing.T, ctx context.Context, repo UserTokenRepo, tx *gorm.DB, userID uuid.UUID) *types.UserToken {
	t.Helper()
	token := &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if _, err := repo.Create(ctx, tx, []*types.UserToken{token}); err != nil {
		t.Fatalf("create token: %v", err)
	}
	return token
}

func TestUserTokenRepoGetByRefreshToken(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "tokens@example.com")
	token := seedToken(t, ctx, repo, tx, user.ID)

	got, err := repo.GetByRefreshToken(ctx, tx, token.RefreshToken)
	if err != nil {
		t.Fatalf("GetByRefreshToken: %v", err)
	}
	if got == nil || got.ID != token.ID {
		t.Fatalf("token = %+v", got)
	}

	got, err = repo.GetByRefreshToken(ctx, tx, "no-such-token")
	if err != nil {
		t.Fatalf("GetByRefreshToken missing: %v", err)
	}
	if got != nil {
		t.Fatalf("unexpected token %+v", got)
	}
}

func TestUserTokenRepoDeleteByUserIDs(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "del-tokens@example.com")
	seedToken(t, ctx, repo, tx, user.ID)
	seedToken(t, ctx, repo, tx, user.ID)

	if err := repo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); err != nil {
		t.Fatalf("DeleteByUserIDs: %v", err)
	}
	tokens, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
	if err != nil {
		t.Fatalf("GetByUserIDs: %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("tokens remain: %d", len(tokens))
	}
}

func TestPasswordResetTokenRepoMarkUsed(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewPasswordResetTokenRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "reset@example.com")
	reset := &types.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	if _, err := repo.Create(ctx, tx, reset); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByToken(ctx, tx, reset.Token)
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if got == nil || got.UsedAt != nil {
		t.Fatalf("token = %+v", got)
	}

	if err := repo.MarkUsed(ctx, tx, reset.Token, time.Now()); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	got, err = repo.GetByToken(ctx, tx, reset.Token)
	if err != nil {
		t.Fatalf("GetByToken after use: %v", err)
	}
	if got == nil || got.UsedAt == nil {
		t.Fatalf("token not marked used: %+v", got)
	}
}
