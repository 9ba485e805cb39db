package message

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitedError is returned when a sender exceeds its message budget.
type RateLimitedError struct {
	Limit      int
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("message rate limit of %d exceeded, retry in %s", e.Limit, e.RetryAfter)
}

func IsRateLimitedError(err error) (*RateLimitedError, bool) {
	var target *RateLimitedError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
