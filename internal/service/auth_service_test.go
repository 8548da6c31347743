package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vinash85/polypLabeler/internal/models"
	"github.com/vinash85/polypLabeler/internal/repository"
)

func TestRegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository(map[uint64]*models.User{})
	svc := NewAuthService(userRepo, newFakeSessionRepository(), time.Hour)

	user, err := svc.Register(ctx, "Alice Doe", " alice ", "secret123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if user.Username != "alice" {
		t.Errorf("expected trimmed username, got %q", user.Username)
	}
	if user.Password == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if user.Progress != 0 {
		t.Errorf("new user must start at progress 0, got %d", user.Progress)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository(map[uint64]*models.User{})
	svc := NewAuthService(userRepo, newFakeSessionRepository(), time.Hour)

	if _, err := svc.Register(ctx, "Alice", "alice", "secret123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Register(ctx, "Other Alice", "alice", "hunter22")
	if !errors.Is(err, repository.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginIssuesSession(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository(map[uint64]*models.User{})
	sessionRepo := newFakeSessionRepository()
	svc := NewAuthService(userRepo, sessionRepo, time.Hour)

	if _, err := svc.Register(ctx, "Alice", "alice", "secret123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	token, user, err := svc.Login(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.Username != "alice" {
		t.Errorf("expected user alice, got %q", user.Username)
	}

	validated, err := svc.ValidateSession(ctx, token)
	if err != nil {
		t.Fatalf("ValidateSession returned error: %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("expected session to resolve to user %d, got %d", user.ID, validated.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository(map[uint64]*models.User{})
	svc := NewAuthService(userRepo, newFakeSessionRepository(), time.Hour)

	if _, err := svc.Register(ctx, "Alice", "alice", "secret123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository(map[uint64]*models.User{})
	svc := NewAuthService(userRepo, newFakeSessionRepository(), time.Hour)

	if _, err := svc.Register(ctx, "Alice", "alice", "secret123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	token, _, err := svc.Login(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if _, err := svc.ValidateSession(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated after logout, got %v", err)
	}
}

func TestValidateSessionEmptyToken(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepository(map[uint64]*models.User{}), newFakeSessionRepository(), time.Hour)

	if _, err := svc.ValidateSession(ctx, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for empty token, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepository(map[uint64]*models.User{})
	svc := NewAuthService(userRepo, newFakeSessionRepository(), time.Hour)

	if _, err := svc.Register(ctx, "Alice", "alice", "secret123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	token, err := svc.RequestPasswordReset(ctx, "alice")
	if err != nil {
		t.Fatalf("RequestPasswordReset returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a reset token")
	}

	stored, _ := userRepo.FindByUsername(ctx, "alice")
	if !stored.PasswordResetToken.Valid {
		t.Fatal("expected reset token hash to be stored")
	}
	if stored.PasswordResetToken.String == token {
		t.Error("reset token must be stored hashed, not plain")
	}

	if err := svc.ResetPassword(ctx, token, "newsecret"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice", "newsecret"); err != nil {
		t.Errorf("expected login with new password to succeed, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected old password to be rejected, got %v", err)
	}

	// The token is single-use.
	if err := svc.ResetPassword(ctx, token, "another"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken on reuse, got %v", err)
	}
}

func TestRequestPasswordResetUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepository(map[uint64]*models.User{}), newFakeSessionRepository(), time.Hour)

	if _, err := svc.RequestPasswordReset(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
