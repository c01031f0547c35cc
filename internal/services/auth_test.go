package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos"
	"github.com/yerinchoi/lingotalk-backend/internal/data/repos/testutil"
)

func TestForgotAndResetPassword(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	svc := NewAuthService(
		tx, log,
		repos.NewUserRepo(tx, log),
		repos.NewUserTokenRepo(tx, log),
		repos.NewPasswordResetTokenRepo(tx, log),
		nil,
		"test-secret",
		time.Hour, time.Hour, time.Hour,
	)

	testutil.SeedUser(t, ctx, tx, "reset@example.com")

	token, err := svc.ForgotPassword(ctx, "reset@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if token == "" {
		t.Fatal("expected a reset token for a known email")
	}

	unknown, err := svc.ForgotPassword(ctx, "nobody@example.com")
	if err != nil || unknown != "" {
		t.Fatalf("unknown email = %q, %v; want empty token and nil error", unknown, err)
	}

	if err := svc.ResetPassword(ctx, token, "brandnewpw1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	access, refresh, err := svc.LoginUser(ctx, "reset@example.com", "brandnewpw1")
	if err != nil {
		t.Fatalf("LoginUser after reset: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected a token pair after password reset")
	}

	if err := svc.ResetPassword(ctx, token, "anotherpw123"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("reused token err = %v, want ErrInvalidResetToken", err)
	}
}

func TestResetPasswordRejectsUnknownToken(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	svc := NewAuthService(
		tx, log,
		repos.NewUserRepo(tx, log),
		repos.NewUserTokenRepo(tx, log),
		repos.NewPasswordResetTokenRepo(tx, log),
		nil,
		"test-secret",
		time.Hour, time.Hour, time.Hour,
	)

	if err := svc.ResetPassword(context.Background(), "no-such-token", "longenough1"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("unknown token err = %v, want ErrInvalidResetToken", err)
	}
}
