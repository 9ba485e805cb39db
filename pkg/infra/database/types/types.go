package types

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UUIDArray binds a uuid slice as a Postgres array, e.g. for "id = ANY(?)".
type UUIDArray []uuid.UUID

func (u UUIDArray) Value() (driver.Value, error) {
	strs := make([]string, len(u))
	for i, id := range u {
		strs[i] = id.String()
	}
	return pq.Array(strs).Value()
}

func (u *UUIDArray) Scan(value interface{}) error {
	if value == nil {
		*u = nil
		return nil
	}

	var strs []string
	if err := pq.Array(&strs).Scan(value); err != nil {
		return fmt.Errorf("failed to scan UUID array: %w", err)
	}

	ids := make([]uuid.UUID, len(strs))
	for i, str := range strs {
		id, err := uuid.Parse(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("failed to parse UUID %s: %w", str, err)
		}
		ids[i] = id
	}

	*u = ids
	return nil
}

// Unique drops duplicates and nil ids, preserving order.
func Unique(ids []uuid.UUID) UUIDArray {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make(UUIDArray, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
