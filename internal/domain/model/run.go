package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/event"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// Run is one execution of the matcher for one application. It is an
// immutable aggregate: every lifecycle transition returns a new copy and,
// where applicable, records a domain event.
type Run struct {
	id                     string
	applicationID          string
	status                 valueobject.RunStatus
	startedAt              *time.Time
	completedAt            *time.Time
	totalLendersEvaluated  int
	totalProgramsEvaluated int
	matchedCount           int
	rejectedCount          int
	errorMessage           string
	metadata               map[string]any
	version                int
	createdAt              time.Time
	updatedAt              time.Time
	domainEvents           []event.DomainEvent
}

// NewRun creates a brand-new run in Pending status.
func NewRun(applicationID string, metadata map[string]any, now time.Time) Run {
	return Run{
		id:            uuid.New().String(),
		applicationID: applicationID,
		status:        valueobject.RunStatusPending,
		metadata:      metadata,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}
}

// ReconstructRun rebuilds a Run from persistence without side effects.
func ReconstructRun(
	id, applicationID string,
	status valueobject.RunStatus,
	startedAt, completedAt *time.Time,
	totalLendersEvaluated, totalProgramsEvaluated, matchedCount, rejectedCount int,
	errorMessage string,
	metadata map[string]any,
	version int,
	createdAt, updatedAt time.Time,
) Run {
	return Run{
		id:                     id,
		applicationID:          applicationID,
		status:                 status,
		startedAt:              startedAt,
		completedAt:            completedAt,
		totalLendersEvaluated:  totalLendersEvaluated,
		totalProgramsEvaluated: totalProgramsEvaluated,
		matchedCount:           matchedCount,
		rejectedCount:          rejectedCount,
		errorMessage:           errorMessage,
		metadata:               metadata,
		version:                version,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}
}

// Start transitions Pending -> InProgress, stamping startedAt.
func (r Run) Start(now time.Time) (Run, error) {
	if !r.status.Equal(valueobject.RunStatusPending) {
		return r, valueobject.ErrInvalidStatusTransition
	}
	next := r
	next.status = valueobject.RunStatusInProgress
	next.startedAt = &now
	next.updatedAt = now
	next.version++
	return next, nil
}

// Complete transitions InProgress -> Completed, stamping completedAt and
// the run summary totals, and records a RunCompleted domain event.
func (r Run) Complete(lendersEvaluated, programsEvaluated, matched, rejected int, now time.Time) (Run, error) {
	if !r.status.Equal(valueobject.RunStatusInProgress) {
		return r, valueobject.ErrInvalidStatusTransition
	}
	next := r
	next.status = valueobject.RunStatusCompleted
	next.completedAt = &now
	next.totalLendersEvaluated = lendersEvaluated
	next.totalProgramsEvaluated = programsEvaluated
	next.matchedCount = matched
	next.rejectedCount = rejected
	next.updatedAt = now
	next.version++
	next.domainEvents = copyEvents(r.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewRunCompleted(
		r.id, r.applicationID, matched, rejected, now,
	))
	return next, nil
}

// Fail transitions InProgress -> Failed, stamping errorMessage and
// completedAt, and records a RunFailed domain event.
func (r Run) Fail(errMessage string, now time.Time) (Run, error) {
	if !r.status.Equal(valueobject.RunStatusInProgress) {
		return r, valueobject.ErrInvalidStatusTransition
	}
	next := r
	next.status = valueobject.RunStatusFailed
	next.errorMessage = errMessage
	next.completedAt = &now
	next.updatedAt = now
	next.version++
	next.domainEvents = copyEvents(r.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewRunFailed(
		r.id, r.applicationID, errMessage, now,
	))
	return next, nil
}

// Cancel transitions Pending -> Cancelled, stamping completedAt.
func (r Run) Cancel(now time.Time) (Run, error) {
	if !r.status.Equal(valueobject.RunStatusPending) {
		return r, valueobject.ErrInvalidStatusTransition
	}
	next := r
	next.status = valueobject.RunStatusCancelled
	next.completedAt = &now
	next.updatedAt = now
	next.version++
	return next, nil
}

// WithMetadata returns a copy with additional metadata keys merged in.
// Rerun does not use it: it passes meta.rerun/meta.reason to CreateRun.
func (r Run) WithMetadata(extra map[string]any) Run {
	next := r
	merged := make(map[string]any, len(r.metadata)+len(extra))
	for k, v := range r.metadata {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	next.metadata = merged
	return next
}

func (r Run) ID() string                     { return r.id }
func (r Run) ApplicationID() string          { return r.applicationID }
func (r Run) Status() valueobject.RunStatus  { return r.status }
func (r Run) StartedAt() *time.Time          { return r.startedAt }
func (r Run) CompletedAt() *time.Time        { return r.completedAt }
func (r Run) TotalLendersEvaluated() int     { return r.totalLendersEvaluated }
func (r Run) TotalProgramsEvaluated() int    { return r.totalProgramsEvaluated }
func (r Run) MatchedCount() int              { return r.matchedCount }
func (r Run) RejectedCount() int             { return r.rejectedCount }
func (r Run) ErrorMessage() string           { return r.errorMessage }
func (r Run) Metadata() map[string]any       { return r.metadata }
func (r Run) Version() int                   { return r.version }
func (r Run) CreatedAt() time.Time           { return r.createdAt }
func (r Run) UpdatedAt() time.Time           { return r.updatedAt }
func (r Run) DomainEvents() []event.DomainEvent { return r.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (r Run) ClearEvents() Run {
	next := r
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
