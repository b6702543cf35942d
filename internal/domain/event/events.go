package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the common interface every domain event satisfies, mirroring
// the teacher's pkg/events.DomainEvent contract.
type DomainEvent interface {
	EventID() string
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

type baseEvent struct {
	ID          string    `json:"event_id"`
	Type        string    `json:"event_type"`
	Occurred    time.Time `json:"occurred_at"`
	AggregateId string    `json:"aggregate_id"`
}

func (e baseEvent) EventID() string      { return e.ID }
func (e baseEvent) EventType() string     { return e.Type }
func (e baseEvent) OccurredAt() time.Time { return e.Occurred }
func (e baseEvent) AggregateID() string   { return e.AggregateId }

func newBase(eventType, aggregateID string, now time.Time) baseEvent {
	return baseEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Occurred:    now,
		AggregateId: aggregateID,
	}
}

// RunCompleted is raised when an underwriting run finishes successfully.
type RunCompleted struct {
	baseEvent
	ApplicationID string `json:"application_id"`
	MatchedCount  int    `json:"matched_count"`
	RejectedCount int    `json:"rejected_count"`
}

// NewRunCompleted constructs a RunCompleted event.
func NewRunCompleted(runID, applicationID string, matched, rejected int, now time.Time) RunCompleted {
	return RunCompleted{
		baseEvent:     newBase("underwriting.run.completed", runID, now),
		ApplicationID: applicationID,
		MatchedCount:  matched,
		RejectedCount: rejected,
	}
}

// RunFailed is raised when an underwriting run fails.
type RunFailed struct {
	baseEvent
	ApplicationID string `json:"application_id"`
	ErrorMessage  string `json:"error_message"`
}

// NewRunFailed constructs a RunFailed event.
func NewRunFailed(runID, applicationID, errMessage string, now time.Time) RunFailed {
	return RunFailed{
		baseEvent:     newBase("underwriting.run.failed", runID, now),
		ApplicationID: applicationID,
		ErrorMessage:  errMessage,
	}
}
