package events

import "time"

// Event is the contract for anything published on the event bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "SESSION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers that do not
// need a dedicated event type.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewSessionEvent builds a lifecycle event for a session. Extra fields are
// merged into the payload next to the session id.
func NewSessionEvent(code, sessionID string, extra map[string]interface{}) Event {
	data := map[string]interface{}{
		"session_id": sessionID,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       code,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
