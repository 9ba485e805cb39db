package cache

import (
	"encoding/json"
)

// RedisMessage is the envelope of every event sent over pub/sub.
type RedisMessage struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}
