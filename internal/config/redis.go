package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to REDIS_URL. It returns a nil client when Redis is
// not configured; every consumer treats a nil client as "feature off".
func NewRedisClient(cfg *Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
