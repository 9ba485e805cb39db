package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Anaselll/TeachMeApp/pkg/infra/breaker"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache/channel"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache/event"
)

type redisEventPublisher struct {
	cache   Client
	channel channel.Channel
}

func NewRedisEventPublisher(cache Client, ch channel.Channel) EventPublisher {
	return &redisEventPublisher{
		cache:   cache,
		channel: ch,
	}
}

func (p *redisEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	data, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	return p.cache.RedisClient().Publish(ctx, string(p.channel), data).Err()
}

// EncodeEvent wraps ev in a RedisMessage envelope.
func EncodeEvent(ev event.Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Type(), err)
	}
	return json.Marshal(RedisMessage{
		Type:  ev.Type(),
		Event: b,
	})
}

type breakerEventPublisher struct {
	next    EventPublisher
	breaker breaker.CircuitBreaker
}

// NewBreakerEventPublisher stops calling next while the breaker is open.
func NewBreakerEventPublisher(next EventPublisher, cb breaker.CircuitBreaker) EventPublisher {
	return &breakerEventPublisher{next: next, breaker: cb}
}

func (p *breakerEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	return p.breaker.Execute(func() error {
		return p.next.Publish(ctx, ev)
	})
}
