package request

import (
	"github.com/Anaselll/TeachMeApp/pkg/domain/session"
)

type UpdateSessionStatusRequest struct {
	Status string `json:"status"`

	ParsedStatus session.Status `json:"-"`
}

func (r *UpdateSessionStatusRequest) Validate() error {
	status, err := session.ParseStatus(r.Status)
	if err != nil {
		return err
	}
	if status == session.StatusScheduled {
		return session.ErrInvalidTransition
	}
	r.ParsedStatus = status
	return nil
}
