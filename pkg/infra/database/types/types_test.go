package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDArray_ValueAndScan(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	v, err := UUIDArray{a, b}.Value()
	require.NoError(t, err)

	var out UUIDArray
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, UUIDArray{a, b}, out)
}

func TestUUIDArray_EmptyValue(t *testing.T) {
	v, err := UUIDArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestUUIDArray_ScanInvalid(t *testing.T) {
	var out UUIDArray
	assert.Error(t, out.Scan([]byte("{not-a-uuid}")))
}

func TestUnique(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, UUIDArray{a, b}, Unique([]uuid.UUID{a, uuid.Nil, b, a}))
}
