package events

import "time"

// Event defines the contract for all assessment events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SECTION_SUBMITTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeSessionStarted      = "SESSION_STARTED"
	TypeSectionsOrganized   = "SECTIONS_ORGANIZED"
	TypeSectionSubmitted    = "SECTION_SUBMITTED"
	TypeAssessmentCompleted = "ASSESSMENT_COMPLETED"
	TypeAssessmentRestarted = "ASSESSMENT_RESTARTED"
	TypeSkillSourceFallback = "SKILL_SOURCE_FALLBACK"
)

// BaseEvent is the one concrete Event used across the service
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// New stamps an event with the current time
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
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
