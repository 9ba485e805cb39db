package event

// SessionActivatedEvent is emitted once both participants signalled readiness.
type SessionActivatedEvent struct {
	SessionID  string `json:"session_id"`
	OriginNode string `json:"origin_node"`
	StudentID  string `json:"student_id"`
	TutorID    string `json:"tutor_id"`
}

func (e SessionActivatedEvent) Type() string {
	return SessionActivatedEventType
}
