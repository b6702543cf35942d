package port

import (
	"context"
	"time"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/event"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository loads a loan application with its business,
// guarantor, and equipment eagerly attached.
type ApplicationRepository interface {
	FindByID(ctx context.Context, id string) (model.Application, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

// CatalogRepository loads the lender catalog with programs and rules
// eagerly attached, never issuing N+1 reads.
type CatalogRepository interface {
	FindActiveLenders(ctx context.Context) ([]model.Lender, error)
}

// RunRepository is the C6 persistence contract for runs, match results, and
// rule evaluations.
type RunRepository interface {
	CreateRun(ctx context.Context, applicationID string, meta map[string]any) (model.Run, error)
	SaveRun(ctx context.Context, run model.Run) error
	GetRun(ctx context.Context, runID string) (model.Run, error)
	GetLatestForApplication(ctx context.Context, applicationID string) (model.Run, error)

	BatchInsertMatchResults(ctx context.Context, runID string, results []model.MatchResult) ([]model.MatchResult, error)
	BatchInsertRuleEvaluations(ctx context.Context, matchResultID string, evaluations []model.RuleEvaluation) ([]model.RuleEvaluation, error)

	GetRunWithResults(ctx context.Context, runID string) (model.Run, []model.MatchResult, error)
	GetMatched(ctx context.Context, runID string) ([]model.MatchResult, error)
	GetRejected(ctx context.Context, runID string) ([]model.MatchResult, error)
	GetEvaluationsForMatch(ctx context.Context, matchResultID string) ([]model.RuleEvaluation, error)

	// WithTransaction runs fn against a RunRepository scoped to a single
	// Postgres transaction: every call fn makes through tx commits
	// atomically on return nil, or rolls back in full if fn returns an
	// error. Used by the orchestrator to persist a run's match results and
	// rule evaluations as one unit, per the run-execution transactional
	// boundary.
	WithTransaction(ctx context.Context, fn func(tx RunRepository) error) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers (Kafka).
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Clock port — evaluators and the orchestrator never read a global clock.
// ---------------------------------------------------------------------------

// Clock supplies the current time, injected so tests control it deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
