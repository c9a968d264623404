// Package session stores session identities in Redis, keyed by an opaque
// session id carried in a cookie.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "feedback-service/internal/domain/session"
)

const (
	keyPrefix  = "session:"
	defaultTTL = 24 * time.Hour
)

// Store maps session ids to authenticated usernames.
type Store interface {
	Create(ctx context.Context, username string) (string, error)
	Identity(ctx context.Context, id string) (domain.Identity, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore implements Store on Redis. Each session expires after a fixed TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisStore returns a Redis-backed session store.
// A non-positive ttl falls back to 24 hours.
func NewRedisStore(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, log: log}
}

// TTL returns how long a new session lives.
func (s *RedisStore) TTL() time.Duration {
	return s.ttl
}

// Create starts a session for username and returns its id.
func (s *RedisStore) Create(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", errors.New("session username cannot be empty")
	}

	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, keyPrefix+id, username, s.ttl).Err(); err != nil {
		s.log.Error("failed to store session", zap.String("username", username), zap.Error(err))
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.log.Debug("session created", zap.String("username", username), zap.Duration("ttl", s.ttl))
	return id, nil
}

// Identity resolves a session id. Unknown or expired ids are anonymous.
func (s *RedisStore) Identity(ctx context.Context, id string) (domain.Identity, error) {
	if id == "" {
		return domain.Anonymous(), nil
	}

	username, err := s.client.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Anonymous(), nil
	}
	if err != nil {
		s.log.Error("failed to load session", zap.Error(err))
		return domain.Anonymous(), fmt.Errorf("failed to load session: %w", err)
	}

	return domain.Authenticated(username), nil
}

// Delete ends a session. Deleting an unknown id is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		s.log.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
