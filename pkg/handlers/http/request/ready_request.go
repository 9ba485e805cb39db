package request

import (
	"github.com/Anaselll/TeachMeApp/pkg/domain/session"
)

type ReadyRequest struct {
	Role string `json:"role"`

	ParsedRole session.Role `json:"-"`
}

func (r *ReadyRequest) Validate() error {
	role, err := session.ParseRole(r.Role)
	if err != nil {
		return err
	}
	r.ParsedRole = role
	return nil
}
