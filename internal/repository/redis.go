package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis. Returns (nil, nil) when no host is
// configured; callers treat a nil client as "feature disabled".
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, nil // Redis is optional
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

func CloseRedisClient(client *redis.Client) {
	if client != nil {
		_ = client.Close()
	}
}
