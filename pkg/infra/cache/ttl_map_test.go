package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLMap_Expiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m := NewTTLMap(time.Minute)
	m.now = func() time.Time { return now }

	m.Set("u1", "Ada")
	v, ok := m.Get("u1")
	assert.True(t, ok)
	assert.Equal(t, "Ada", v)

	now = now.Add(2 * time.Minute)
	_, ok = m.Get("u1")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestTTLMap_DeleteAndClear(t *testing.T) {
	m := NewTTLMap(time.Minute)
	m.Set("a", 1)
	m.Set("b", 2)

	m.Delete("a")
	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Clear()
	assert.Equal(t, 0, m.Len())
}
