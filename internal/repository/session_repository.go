package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository maps opaque session tokens to user IDs with a TTL.
type SessionRepository interface {
	// Set stores the token with the given TTL.
	Set(ctx context.Context, token string, userID uint64, ttl time.Duration) error

	// Get returns the user ID for the token, or (0, nil) if the token is
	// unknown or expired.
	Get(ctx context.Context, token string) (uint64, error)

	// Delete removes the token.
	Delete(ctx context.Context, token string) error
}

type sessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a redis-backed session repository
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &sessionRepository{
		client: client,
	}
}

func (r *sessionRepository) Set(ctx context.Context, token string, userID uint64, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", token)
	if err := r.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, token string) (uint64, error) {
	key := fmt.Sprintf("session:%s", token)

	userID, err := r.client.Get(ctx, key).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}

	return userID, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	key := fmt.Sprintf("session:%s", token)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
