package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event defines the contract for all client-side state events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_TOGGLED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	NoteCreated       = "NOTE_CREATED"
	NoteToggled       = "NOTE_TOGGLED"
	NoteDeleted       = "NOTE_DELETED"
	ReminderCreated   = "REMINDER_CREATED"
	ReminderToggled   = "REMINDER_TOGGLED"
	ReminderDeleted   = "REMINDER_DELETED"
	ActivityDeleted   = "ACTIVITY_DELETED"
	ChatTurnCompleted = "CHAT_TURN_COMPLETED"
	SearchCompleted   = "SEARCH_COMPLETED"
	CodeAnalyzed      = "CODE_ANALYZED"
)

// Well-known payload keys.
const (
	KeyEntityId = "entity_id"
	KeyKind     = "kind"
	KeyOrigin   = "origin"
	KeySource   = "source"
	KeySuccess  = "success"
)

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

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

// StringField reads a string payload value, returning "" when missing.
func StringField(e Event, key string) string {
	v, _ := e.Payload()[key].(string)
	return v
}

type envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Marshal encodes an event for a message bus.
func Marshal(e Event) ([]byte, error) {
	data, err := json.Marshal(envelope{Type: e.EventType(), Data: e.Payload(), OccurredAt: e.Timestamp()})
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.EventType(), err)
	}
	return data, nil
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return BaseEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if env.Type == "" {
		return BaseEvent{}, fmt.Errorf("unmarshal event: missing type")
	}
	if env.Data == nil {
		env.Data = map[string]interface{}{}
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
