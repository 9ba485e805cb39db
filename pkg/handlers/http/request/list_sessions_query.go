package request

import (
	"strings"

	"github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/google/uuid"
)

type ListSessionsQuery struct {
	UserID string `query:"userId"`
	Status string `query:"status"`
	Role   string `query:"role"`

	User         uuid.UUID      `query:"-"`
	ParsedRole   session.Role   `query:"-"`
	ParsedStatus session.Status `query:"-"`
}

func (q *ListSessionsQuery) Validate() error {
	role, err := session.ParseRole(q.Role)
	if err != nil {
		return err
	}
	q.ParsedRole = role

	if s := strings.TrimSpace(q.Status); s != "" {
		status, err := session.ParseStatus(strings.ToLower(s))
		if err != nil {
			return err
		}
		q.ParsedStatus = status
	}

	if strings.TrimSpace(q.UserID) != "" {
		if q.User, err = parseUUID("userId", q.UserID); err != nil {
			return err
		}
	}
	return nil
}
