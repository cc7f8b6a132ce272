package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisLimiter struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis shares login counters across instances. url is a redis:// URL.
func NewRedis(url string) (Limiter, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &redisLimiter{rdb: redis.NewClient(opt), prefix: "minascan:login:"}, nil
}

func (r *redisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	ttl, err := r.rdb.TTL(ctx, r.prefix+"blocked:"+key).Result()
	if err != nil {
		return true, 0, err
	}
	if ttl > 0 {
		return false, ttl, nil
	}
	return true, 0, nil
}

func (r *redisLimiter) RecordFailure(ctx context.Context, key string) error {
	k := r.prefix + "attempts:" + key
	n, err := r.rdb.Incr(ctx, k).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		if err := r.rdb.Expire(ctx, k, WindowDuration).Err(); err != nil {
			return err
		}
	}
	if n >= MaxAttempts {
		return r.rdb.Set(ctx, r.prefix+"blocked:"+key, 1, BlockDuration).Err()
	}
	return nil
}

func (r *redisLimiter) Reset(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.prefix+"attempts:"+key, r.prefix+"blocked:"+key).Err()
}

func (r *redisLimiter) Ping(ctx context.Context) error { return r.rdb.Ping(ctx).Err() }

func (r *redisLimiter) Close() error { return r.rdb.Close() }
