package event

import "reflect"

type Event interface {
	Type() string
}

const (
	RelayMessageEventType     = "RelayMessageEvent"
	SessionActivatedEventType = "SessionActivatedEvent"
)

var Registry = map[string]reflect.Type{
	RelayMessageEventType:     reflect.TypeOf(RelayMessageEvent{}),
	SessionActivatedEventType: reflect.TypeOf(SessionActivatedEvent{}),
}
