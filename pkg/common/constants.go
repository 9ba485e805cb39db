package common

import "time"

const (
	UserCacheTTL = 5 * time.Minute

	IdempotencyKeyHeader = "Idempotency-Key"
	NextCursorHeader     = "X-Next-Cursor"
	RequestIDHeader      = "X-Request-Id"

	TokenQueryParam = "token"
)
