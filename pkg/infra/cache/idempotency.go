package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const idempotencyPending = "__pending__"

var ErrIdempotencyInFlight = errors.New("a request with this idempotency key is still being processed")

// IdempotencyStore remembers the result of a keyed operation for a while so
// that retried submissions get the original answer.
//
//go:generate mockery --name=IdempotencyStore --dir=. --output=./mocks --filename=idempotency_store_mock.go --case=underscore
type IdempotencyStore interface {
	// Reserve claims key. When the key already holds a completed result it
	// is returned with reserved set to false.
	Reserve(ctx context.Context, scope, owner, key string) (result string, reserved bool, err error)
	Complete(ctx context.Context, scope, owner, key, result string) error
	Release(ctx context.Context, scope, owner, key string) error
}

type redisIdempotencyStore struct {
	cache      Client
	pendingTTL time.Duration
	ttl        time.Duration
}

// NewIdempotencyStore keeps completed results for ttl. A reservation that is
// never completed or released expires after pendingTTL, which should cover a
// single request.
func NewIdempotencyStore(cache Client, pendingTTL, ttl time.Duration) IdempotencyStore {
	if pendingTTL <= 0 || pendingTTL > ttl {
		pendingTTL = ttl
	}
	return &redisIdempotencyStore{cache: cache, pendingTTL: pendingTTL, ttl: ttl}
}

func idempotencyKey(scope, owner, key string) string {
	return fmt.Sprintf(IdempotencyKeyPattern, scope, owner, key)
}

func (s *redisIdempotencyStore) Reserve(ctx context.Context, scope, owner, key string) (string, bool, error) {
	k := idempotencyKey(scope, owner, key)
	ok, err := s.cache.SetNX(ctx, k, idempotencyPending, s.pendingTTL)
	if err != nil {
		return "", false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if ok {
		return "", true, nil
	}

	value, err := s.cache.Get(ctx, k)
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; try once more
		ok, err = s.cache.SetNX(ctx, k, idempotencyPending, s.pendingTTL)
		if err != nil {
			return "", false, fmt.Errorf("reserve idempotency key: %w", err)
		}
		if ok {
			return "", true, nil
		}
		return "", false, ErrIdempotencyInFlight
	}
	if err != nil {
		return "", false, fmt.Errorf("read idempotency key: %w", err)
	}
	if value == idempotencyPending {
		return "", false, ErrIdempotencyInFlight
	}
	return value, false, nil
}

func (s *redisIdempotencyStore) Complete(ctx context.Context, scope, owner, key, result string) error {
	if err := s.cache.Set(ctx, idempotencyKey(scope, owner, key), result, s.ttl); err != nil {
		return fmt.Errorf("store idempotency result: %w", err)
	}
	return nil
}

func (s *redisIdempotencyStore) Release(ctx context.Context, scope, owner, key string) error {
	if err := s.cache.Delete(ctx, idempotencyKey(scope, owner, key)); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
