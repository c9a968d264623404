package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "feedback-service/internal/domain/user"
)

// UserCache defines the interface for user caching operations.
type UserCache interface {
	// Get retrieves a user from cache by username.
	// Returns nil if the user is not cached.
	Get(ctx context.Context, username string) (*domain.User, error)

	// Set stores a user in cache with the configured TTL.
	Set(ctx context.Context, user *domain.User) error

	// Delete removes a user from cache by username.
	Delete(ctx context.Context, username string) error
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisUserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for a username.
func cacheKey(username string) string {
	return fmt.Sprintf("user:%s", username)
}

// Get retrieves a user from Redis cache.
func (c *RedisUserCache) Get(ctx context.Context, username string) (*domain.User, error) {
	data, err := c.client.Get(ctx, cacheKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.String("username", username))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		c.log.Error("failed to unmarshal cached user", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("username", username))
	return &user, nil
}

// Set stores a user in Redis cache with TTL.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	data, err := json.Marshal(user)
	if err != nil {
		c.log.Error("failed to marshal user for cache", zap.String("username", user.Username), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, cacheKey(user.Username), data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("username", user.Username), zap.Error(err))
		return err
	}

	c.log.Debug("cached user", zap.String("username", user.Username), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes a user from Redis cache.
func (c *RedisUserCache) Delete(ctx context.Context, username string) error {
	if err := c.client.Del(ctx, cacheKey(username)).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.String("username", username), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.String("username", username))
	return nil
}
