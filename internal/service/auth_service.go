package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vinash85/polypLabeler/internal/models"
	"github.com/vinash85/polypLabeler/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("invalid password reset token")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// AuthService is the session/identity provider: it owns user records and
// issues the opaque session tokens the HTTP surface authenticates with.
type AuthService interface {
	Register(ctx context.Context, fullname, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, username string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sessionTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

func (s *authService) Register(ctx context.Context, fullname, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Fullname: strings.TrimSpace(fullname),
		Username: username,
		Password: string(hash),
		Progress: 0,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := generateSessionToken()
	if err := s.sessionRepo.Set(ctx, token, user.ID, s.sessionTTL); err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Session outlived the user row.
		return nil, ErrUnauthenticated
	}

	return user, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, username string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	token := uuid.NewString()
	if err := s.userRepo.SetResetToken(ctx, user.ID, hashToken(token)); err != nil {
		return "", err
	}

	return token, nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	return s.userRepo.ClearResetToken(ctx, user.ID)
}

func generateSessionToken() string {
	// Two v4 UUIDs back to back; 256 bits of randomness.
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
