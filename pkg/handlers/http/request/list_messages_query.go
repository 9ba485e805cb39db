package request

import (
	"fmt"

	"github.com/Anaselll/TeachMeApp/pkg/domain/message"
)

type ListMessagesQuery struct {
	Limit int    `query:"limit"`
	After string `query:"after"`

	AfterSeq int64 `query:"-"`
}

func (q *ListMessagesQuery) Validate(maxLimit int) error {
	if q.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		return fmt.Errorf("limit must not exceed %d", maxLimit)
	}
	seq, err := message.DecodeCursor(q.After)
	if err != nil {
		return fmt.Errorf("after: %w", err)
	}
	q.AfterSeq = seq
	return nil
}
