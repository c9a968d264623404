package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config describes the Redis server backing sessions and the user cache.
type Config struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
}

// Addr joins Host and Port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Client is the go-redis client shared by the session store and the user cache.
type Client struct {
	*redis.Client
	log *zap.Logger
}

// NewClient dials Redis and fails unless the server answers a ping,
// so the service never starts without its session backend.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConn,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("session backend unreachable at %s: %w", addr, err)
	}

	log = log.With(zap.String("component", "redis"), zap.String("redis_addr", addr))
	log.Info("session and cache backend ready",
		zap.Int("redis_db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
		zap.Int("min_idle", cfg.MinIdleConn),
	)

	return &Client{Client: rdb, log: log}, nil
}

// Ping reports whether the backend still answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Close releases the pool. Sessions stay in Redis until their TTL expires.
func (c *Client) Close() error {
	c.log.Info("closing session and cache backend")
	return c.Client.Close()
}
