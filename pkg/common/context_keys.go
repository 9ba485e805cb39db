package common

type contextKey string

const (
	TraceIdKey            contextKey = "trace_id"
	CallerIDContextKey    contextKey = "caller_id"
	CallerEmailContextKey contextKey = "caller_email"
	WsSemaphoreContextKey contextKey = "ws_semaphore"
	LatencyContextKey     contextKey = "__execution_time"
)
