package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "hoponhub:session:"

// RedisStore keeps each session as one hash. Every write refreshes the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redisURL (redis://host:port/db) and pings it.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 3

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStoreFromClient(client, ttl), nil
}

func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) key(sid string) string {
	return redisKeyPrefix + sid
}

func (r *RedisStore) Get(ctx context.Context, sid, key string) ([]byte, bool, error) {
	if sid == "" {
		return nil, false, ErrEmptySessionID
	}
	v, err := r.client.HGet(ctx, r.key(sid), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis hget %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, sid, key string, value []byte) error {
	if sid == "" {
		return ErrEmptySessionID
	}
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.key(sid), key, value)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key(sid), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
