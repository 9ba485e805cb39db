package session

import (
	"fmt"
	"strings"
)

// Role is the side a participant plays in a session.
type Role int

const (
	RoleStudent Role = iota + 1
	RoleTutor
)

var ErrInvalidRole = fmt.Errorf("role must be 'student' or 'tutor'")

func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "student":
		return RoleStudent, nil
	case "tutor":
		return RoleTutor, nil
	default:
		return 0, ErrInvalidRole
	}
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleTutor:
		return "tutor"
	default:
		return "unknown"
	}
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTutor
}

// ParticipantColumn is the sessions column holding the user playing this role.
func (r Role) ParticipantColumn() string {
	switch r {
	case RoleStudent:
		return "student_id"
	case RoleTutor:
		return "tutor_id"
	default:
		return ""
	}
}

// ReadyColumn is the readiness flag owned by this role.
func (r Role) ReadyColumn() string {
	switch r {
	case RoleStudent:
		return "student_ready"
	case RoleTutor:
		return "tutor_ready"
	default:
		return ""
	}
}

// PeerReadyColumn is the readiness flag owned by the other role.
func (r Role) PeerReadyColumn() string {
	switch r {
	case RoleStudent:
		return "tutor_ready"
	case RoleTutor:
		return "student_ready"
	default:
		return ""
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrInvalidRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
