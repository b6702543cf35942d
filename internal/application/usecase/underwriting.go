// Package usecase orchestrates a full underwriting run: loading the
// application and catalog, invoking the matcher, persisting results, and
// driving the Run lifecycle.
package usecase

import (
	"context"
	"fmt"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/matcher"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/port"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// UnderwritingOrchestrator is the public surface a presentation layer calls
// into: run/rerun a match, and read back its results.
type UnderwritingOrchestrator struct {
	applications port.ApplicationRepository
	catalog      port.CatalogRepository
	runs         port.RunRepository
	publisher    port.EventPublisher
	matcher      *matcher.Matcher
	clock        port.Clock
}

// New wires an UnderwritingOrchestrator over its ports.
func New(
	applications port.ApplicationRepository,
	catalog port.CatalogRepository,
	runs port.RunRepository,
	publisher port.EventPublisher,
	m *matcher.Matcher,
	clock port.Clock,
) *UnderwritingOrchestrator {
	return &UnderwritingOrchestrator{
		applications: applications,
		catalog:      catalog,
		runs:         runs,
		publisher:    publisher,
		matcher:      m,
		clock:        clock,
	}
}

// RunUnderwriting creates a new Run, executes the three-tier matcher over
// every active lender, persists the results, and returns the completed Run.
// On failure the Run is saved as Failed and a zero Run is returned with the
// error.
func (o *UnderwritingOrchestrator) RunUnderwriting(ctx context.Context, applicationID string, meta map[string]any) (model.Run, error) {
	run, err := o.runs.CreateRun(ctx, applicationID, meta)
	if err != nil {
		return model.Run{}, fmt.Errorf("create run: %w", err)
	}
	return o.execute(ctx, run)
}

// RerunUnderwriting behaves identically to RunUnderwriting, but stamps
// meta.rerun=true and meta.reason on the created Run.
func (o *UnderwritingOrchestrator) RerunUnderwriting(ctx context.Context, applicationID string, reason string) (model.Run, error) {
	meta := map[string]any{"rerun": true, "reason": reason}
	run, err := o.runs.CreateRun(ctx, applicationID, meta)
	if err != nil {
		return model.Run{}, fmt.Errorf("create run: %w", err)
	}
	return o.execute(ctx, run)
}

func (o *UnderwritingOrchestrator) execute(ctx context.Context, run model.Run) (model.Run, error) {
	now := o.clock.Now()
	run, err := run.Start(now)
	if err != nil {
		return model.Run{}, fmt.Errorf("start run: %w", err)
	}
	if err := o.runs.SaveRun(ctx, run); err != nil {
		return model.Run{}, fmt.Errorf("save run: %w", err)
	}

	matches, application, failErr := o.evaluate(ctx, run)
	if failErr != nil {
		return o.fail(ctx, run, failErr)
	}

	if err := ctx.Err(); err != nil {
		return o.cancel(ctx, run)
	}

	results, matched, rejected, err := o.persist(ctx, run, matches)
	if err != nil {
		return o.fail(ctx, run, fmt.Errorf("persist results: %w", err))
	}

	if err := o.promoteApplicationStatus(ctx, application); err != nil {
		return o.fail(ctx, run, fmt.Errorf("promote application status: %w", err))
	}

	completedAt := o.clock.Now()
	run, err = run.Complete(len(matches), totalProgramsEvaluated(matches), matched, rejected, completedAt)
	if err != nil {
		return model.Run{}, fmt.Errorf("complete run: %w", err)
	}
	if err := o.runs.SaveRun(ctx, run); err != nil {
		return model.Run{}, fmt.Errorf("save completed run: %w", err)
	}

	_ = results // identifiers already attached by BatchInsertMatchResults
	if pubErr := o.publisher.Publish(ctx, run.DomainEvents()...); pubErr != nil {
		return model.Run{}, fmt.Errorf("publish run completed event: %w", pubErr)
	}
	return run.ClearEvents(), nil
}

// evaluate loads the application and active lender catalog and runs the
// matcher. Returns (nil, application, nil) with zero matches when there
// are no active lenders — no tier evaluation is attempted in that case.
func (o *UnderwritingOrchestrator) evaluate(ctx context.Context, run model.Run) ([]matcher.Match, model.Application, error) {
	application, err := o.applications.FindByID(ctx, run.ApplicationID())
	if err != nil {
		return nil, model.Application{}, fmt.Errorf("load application: %w", err)
	}

	lenders, err := o.catalog.FindActiveLenders(ctx)
	if err != nil {
		return nil, model.Application{}, fmt.Errorf("load active lenders: %w", err)
	}
	if len(lenders) == 0 {
		return nil, application, nil
	}

	return o.matcher.MatchApplicationToLenders(application, lenders), application, nil
}

// persist writes every match result and its rule evaluations inside a
// single Postgres transaction: either the whole batch lands, or none of it
// does, matching the run-execution transactional boundary ("match results
// and rule evaluations are created together in one transaction per
// execution").
func (o *UnderwritingOrchestrator) persist(ctx context.Context, run model.Run, matches []matcher.Match) ([]model.MatchResult, int, int, error) {
	if len(matches) == 0 {
		return nil, 0, 0, nil
	}

	pending := make([]model.MatchResult, 0, len(matches))
	for _, m := range matches {
		pending = append(pending, toMatchResult(run.ID(), m))
	}

	var saved []model.MatchResult
	matched, rejected := 0, 0
	err := o.runs.WithTransaction(ctx, func(tx port.RunRepository) error {
		var err error
		saved, err = tx.BatchInsertMatchResults(ctx, run.ID(), pending)
		if err != nil {
			return fmt.Errorf("batch insert match results: %w", err)
		}

		matched, rejected = 0, 0
		for i, result := range saved {
			if result.IsEligible {
				matched++
			} else {
				rejected++
			}
			if evaluations := toRuleEvaluations(result.ID, matches[i]); len(evaluations) > 0 {
				if _, err := tx.BatchInsertRuleEvaluations(ctx, result.ID, evaluations); err != nil {
					return fmt.Errorf("batch insert rule evaluations: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, 0, err
	}
	return saved, matched, rejected, nil
}

func (o *UnderwritingOrchestrator) promoteApplicationStatus(ctx context.Context, application model.Application) error {
	if !application.Status.Equal(valueobject.ApplicationStatusSubmitted) {
		return nil
	}
	return o.applications.UpdateStatus(ctx, application.ID, valueobject.ApplicationStatusInUnderwriting.String())
}

func (o *UnderwritingOrchestrator) fail(ctx context.Context, run model.Run, cause error) (model.Run, error) {
	now := o.clock.Now()
	failed, err := run.Fail(cause.Error(), now)
	if err != nil {
		return model.Run{}, fmt.Errorf("%w (also failed to transition run to Failed: %v)", cause, err)
	}
	if saveErr := o.runs.SaveRun(ctx, failed); saveErr != nil {
		return model.Run{}, fmt.Errorf("%w (also failed to persist Failed run: %v)", cause, saveErr)
	}
	_ = o.publisher.Publish(ctx, failed.DomainEvents()...)
	return model.Run{}, cause
}

func (o *UnderwritingOrchestrator) cancel(ctx context.Context, run model.Run) (model.Run, error) {
	now := o.clock.Now()
	cancelled, err := run.Cancel(now)
	if err != nil {
		// Cancel only transitions from Pending; a run already InProgress has
		// no Cancelled path of its own here, so surface context.Canceled as-is.
		return model.Run{}, ctx.Err()
	}
	if saveErr := o.runs.SaveRun(ctx, cancelled); saveErr != nil {
		return model.Run{}, fmt.Errorf("cancel run: %w", saveErr)
	}
	return model.Run{}, ctx.Err()
}

// GetRun fetches a run by id.
func (o *UnderwritingOrchestrator) GetRun(ctx context.Context, runID string) (model.Run, error) {
	return o.runs.GetRun(ctx, runID)
}

// GetLatestForApplication fetches the most recent run for an application.
func (o *UnderwritingOrchestrator) GetLatestForApplication(ctx context.Context, applicationID string) (model.Run, error) {
	return o.runs.GetLatestForApplication(ctx, applicationID)
}

// GetMatched returns the eligible match results of a run, ordered by
// fit score descending.
func (o *UnderwritingOrchestrator) GetMatched(ctx context.Context, runID string) ([]model.MatchResult, error) {
	return o.runs.GetMatched(ctx, runID)
}

// GetRejected returns the rejected match results of a run, ordered by
// (rejection_tier ascending, created_at ascending).
func (o *UnderwritingOrchestrator) GetRejected(ctx context.Context, runID string) ([]model.MatchResult, error) {
	return o.runs.GetRejected(ctx, runID)
}

// GetEvaluationsForMatch returns the rule evaluations behind one match
// result, in evaluation order.
func (o *UnderwritingOrchestrator) GetEvaluationsForMatch(ctx context.Context, matchResultID string) ([]model.RuleEvaluation, error) {
	return o.runs.GetEvaluationsForMatch(ctx, matchResultID)
}

func totalProgramsEvaluated(matches []matcher.Match) int {
	total := 0
	for _, m := range matches {
		if m.Program != nil {
			total++
		}
	}
	return total
}

func toMatchResult(runID string, m matcher.Match) model.MatchResult {
	var programID *string
	if m.Program != nil {
		id := m.Program.ID
		programID = &id
	}
	var rejectionReason *string
	if m.RejectionReason != "" {
		rejectionReason = &m.RejectionReason
	}
	return model.MatchResult{
		RunID:                   runID,
		LenderID:                m.Lender.ID,
		ProgramID:               programID,
		IsEligible:              m.IsEligible,
		FitScore:                m.FitScore,
		RejectionReason:         rejectionReason,
		RejectionTier:           m.RejectionTier,
		EstimatedRate:           m.EstimatedRate,
		EstimatedMonthlyPayment: m.EstimatedMonthlyPayment,
		ApprovalProbability:     m.ApprovalProbability,
		CreditTier:              m.CreditTier,
		TotalRulesEvaluated:     m.TotalRulesEvaluated,
		RulesPassed:             m.RulesPassed,
		RulesFailed:             m.RulesFailed,
		MandatoryRulesPassed:    m.MandatoryAllPassed,
	}
}

func toRuleEvaluations(matchResultID string, m matcher.Match) []model.RuleEvaluation {
	evaluations := make([]model.RuleEvaluation, 0, len(m.RuleResults))
	for _, rr := range m.RuleResults {
		ruleID := rr.Rule.ID
		evaluations = append(evaluations, model.RuleEvaluation{
			MatchResultID: matchResultID,
			RuleID:        &ruleID,
			RuleName:      rr.Rule.RuleName,
			RuleType:      rr.Rule.Kind.String(),
			Passed:        rr.Result.Passed,
			Score:         rr.Result.Score,
			Weight:        rr.Result.Weight,
			Mandatory:     rr.Result.Mandatory,
			Reason:        rr.Result.Reason,
			Evidence:      rr.Result.Evidence,
		})
	}
	return evaluations
}
