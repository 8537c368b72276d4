package database

import (
	"context"
	"fmt"
	"time"

	"kledje/pkg/config"
	"kledje/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the client shared by the rate limiter. Callers treat an
// error as "run without Redis".
func InitRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(redisOptions(cfg.Redis))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis ping failed", "addr", cfg.Redis.Addr(), "error", err)
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr(), err)
	}

	logger.Info("Redis connected", "addr", cfg.Redis.Addr(), "db", cfg.Redis.RedisDB)
	return client, nil
}

func redisOptions(rc config.RedisConfig) *redis.Options {
	dial := rc.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}

	return &redis.Options{
		Addr:         rc.Addr(),
		Username:     rc.RedisUsername,
		Password:     rc.RedisPassword,
		DB:           rc.RedisDB,
		DialTimeout:  dial,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
	}
}

func CloseRedis(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
