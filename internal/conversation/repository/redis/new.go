package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"customer-support-agent/internal/conversation/repository"
	"customer-support-agent/pkg/log"
)

const (
	defaultPrefix   = "support:"
	maxWatchRetries = 5
)

// Config describes how to reach Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type implRepository struct {
	rdb    *goredis.Client
	prefix string
	l      log.Logger
}

var _ repository.Repository = (*implRepository)(nil)

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg Config, l log.Logger) (*implRepository, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &implRepository{rdb: rdb, prefix: prefix, l: l}, nil
}

func (r *implRepository) Close() error {
	return r.rdb.Close()
}

func (r *implRepository) stateKey(id string) string   { return r.prefix + "state:" + id }
func (r *implRepository) pendingKey(id string) string { return r.prefix + "pending:" + id }
func (r *implRepository) revKey(id string) string     { return r.prefix + "rev:" + id }
