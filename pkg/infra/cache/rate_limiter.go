package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

//go:generate mockery --name=RateLimiter --dir=. --output=./mocks --filename=rate_limiter_mock.go --case=underscore
type RateLimiter interface {
	Allow(ctx context.Context, scope, subject string) (RateLimitResult, error)
}

type RateLimiterOpts struct {
	TimeProvider func() time.Time
	UuidProvider func() uuid.UUID
}

// slidingWindowLimiter counts hits in a sorted set scored by unix seconds.
type slidingWindowLimiter struct {
	redis        *redis.Client
	limit        int
	window       time.Duration
	timeProvider func() time.Time
	uuidProvider func() uuid.UUID
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, opts *RateLimiterOpts) RateLimiter {
	timeProvider := time.Now
	uuidProvider := uuid.New
	if opts != nil && opts.TimeProvider != nil {
		timeProvider = opts.TimeProvider
	}
	if opts != nil && opts.UuidProvider != nil {
		uuidProvider = opts.UuidProvider
	}
	return &slidingWindowLimiter{
		redis:        redisClient,
		limit:        limit,
		window:       window,
		timeProvider: timeProvider,
		uuidProvider: uuidProvider,
	}
}

func (l *slidingWindowLimiter) Allow(ctx context.Context, scope, subject string) (RateLimitResult, error) {
	key := fmt.Sprintf(RateLimitKeyPattern, scope, subject)
	now := l.timeProvider()
	windowStart := now.Add(-l.window).Unix()
	result := RateLimitResult{
		Limit:   l.limit,
		ResetAt: now.Add(l.window),
	}

	count, err := l.redis.ZCount(ctx, key,
		strconv.FormatInt(windowStart, 10),
		strconv.FormatInt(now.Unix(), 10)).Result()
	if err != nil {
		return result, fmt.Errorf("failed to count hits for %s: %w", key, err)
	}

	if count >= int64(l.limit) {
		result.RetryAfter = l.window
		return result, nil
	}

	member := fmt.Sprintf("%d:%s", now.Unix(), l.uuidProvider().String())
	pipe := l.redis.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, &redis.Z{
		Score:  float64(now.Unix()),
		Member: member,
	})
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return result, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	result.Allowed = true
	result.Remaining = l.limit - int(count) - 1
	return result, nil
}
