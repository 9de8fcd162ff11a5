package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisTokenKey = "sayohat:session:token"

// RedisStore shares one admin session across processes, for deployments where
// several operator shells talk to the API through the same identity.
type RedisStore struct {
	rdb *redis.Client
	ctx context.Context
}

// NewRedisStore connects and verifies the connection with a ping.
func NewRedisStore(addr, password string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, ctx: ctx}, nil
}

func (s *RedisStore) Token() string {
	val, err := s.rdb.Get(s.ctx, redisTokenKey).Result()
	if err != nil {
		return ""
	}
	return val
}

func (s *RedisStore) Set(token string) error {
	// No TTL: the token's own exp claim bounds its life, and a 401 clears it.
	return s.rdb.Set(s.ctx, redisTokenKey, token, 0).Err()
}

func (s *RedisStore) Clear() error {
	return s.rdb.Del(s.ctx, redisTokenKey).Err()
}
