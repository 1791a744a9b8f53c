package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is implemented by every event raised by the domain
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// BaseEvent provides the common event fields
type BaseEvent struct {
	ID          string    `json:"event_id"`
	Type        string    `json:"event_type"`
	Aggregate   string    `json:"aggregate_id"`
	OccurredAtT time.Time `json:"occurred_at"`
}

// NewBaseEvent creates the common event envelope
func NewBaseEvent(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Aggregate:   aggregateID,
		OccurredAtT: time.Now(),
	}
}

// EventID returns the unique event ID
func (e BaseEvent) EventID() string { return e.ID }

// EventType returns the event type name
func (e BaseEvent) EventType() string { return e.Type }

// AggregateID returns the ID of the aggregate the event belongs to
func (e BaseEvent) AggregateID() string { return e.Aggregate }

// OccurredAt returns when the event occurred
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredAtT }
