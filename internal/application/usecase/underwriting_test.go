package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/event"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/matcher"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/port"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/ruleengine"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeApplicationRepo struct {
	app           model.Application
	findErr       error
	updatedStatus string
	updateErr     error
}

func (f *fakeApplicationRepo) FindByID(ctx context.Context, id string) (model.Application, error) {
	return f.app, f.findErr
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.updatedStatus = status
	return f.updateErr
}

type fakeCatalogRepo struct {
	lenders []model.Lender
	err     error
}

func (f *fakeCatalogRepo) FindActiveLenders(ctx context.Context) ([]model.Lender, error) {
	return f.lenders, f.err
}

type fakeRunRepo struct {
	savedRuns       []model.Run
	insertedResults []model.MatchResult
	insertedEvals   []model.RuleEvaluation

	// failEvaluationsForLender, when non-empty, makes
	// BatchInsertRuleEvaluations fail for that lender's match result —
	// used to exercise rollback of an otherwise-already-inserted match
	// result within the same transaction.
	failEvaluationsForLender string
}

// WithTransaction simulates a Postgres transaction over a fake: fn runs
// against a scratch fakeRunRepo, and its writes are only merged into f once
// fn returns nil — mirroring commit-or-rollback without a real database.
func (f *fakeRunRepo) WithTransaction(ctx context.Context, fn func(tx port.RunRepository) error) error {
	scratch := &fakeRunRepo{failEvaluationsForLender: f.failEvaluationsForLender}
	if err := fn(scratch); err != nil {
		return err
	}
	f.savedRuns = append(f.savedRuns, scratch.savedRuns...)
	f.insertedResults = append(f.insertedResults, scratch.insertedResults...)
	f.insertedEvals = append(f.insertedEvals, scratch.insertedEvals...)
	return nil
}

func (f *fakeRunRepo) CreateRun(ctx context.Context, applicationID string, meta map[string]any) (model.Run, error) {
	return model.NewRun(applicationID, meta, time.Now()), nil
}

func (f *fakeRunRepo) SaveRun(ctx context.Context, run model.Run) error {
	f.savedRuns = append(f.savedRuns, run)
	return nil
}

func (f *fakeRunRepo) GetRun(ctx context.Context, runID string) (model.Run, error) {
	return model.Run{}, nil
}

func (f *fakeRunRepo) GetLatestForApplication(ctx context.Context, applicationID string) (model.Run, error) {
	return model.Run{}, nil
}

func (f *fakeRunRepo) BatchInsertMatchResults(ctx context.Context, runID string, results []model.MatchResult) ([]model.MatchResult, error) {
	for i := range results {
		results[i].ID = "match-" + runID + "-" + resultKey(i)
	}
	f.insertedResults = append(f.insertedResults, results...)
	return results, nil
}

func resultKey(i int) string {
	return string(rune('a' + i))
}

func (f *fakeRunRepo) BatchInsertRuleEvaluations(ctx context.Context, matchResultID string, evaluations []model.RuleEvaluation) ([]model.RuleEvaluation, error) {
	if f.failEvaluationsForLender != "" {
		for _, result := range f.insertedResults {
			if result.ID == matchResultID && result.LenderID == f.failEvaluationsForLender {
				return nil, errors.New("simulated rule evaluation insert failure")
			}
		}
	}
	f.insertedEvals = append(f.insertedEvals, evaluations...)
	return evaluations, nil
}

func (f *fakeRunRepo) GetRunWithResults(ctx context.Context, runID string) (model.Run, []model.MatchResult, error) {
	return model.Run{}, nil, nil
}

func (f *fakeRunRepo) GetMatched(ctx context.Context, runID string) ([]model.MatchResult, error) {
	return nil, nil
}

func (f *fakeRunRepo) GetRejected(ctx context.Context, runID string) ([]model.MatchResult, error) {
	return nil, nil
}

func (f *fakeRunRepo) GetEvaluationsForMatch(ctx context.Context, matchResultID string) ([]model.RuleEvaluation, error) {
	return nil, nil
}

type fakePublisher struct {
	published []event.DomainEvent
}

func (f *fakePublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	f.published = append(f.published, events...)
	return nil
}

func mustStatus(t *testing.T, s string) valueobject.ApplicationStatus {
	t.Helper()
	st, err := valueobject.NewApplicationStatus(s)
	require.NoError(t, err)
	return st
}

func testApplication(t *testing.T, status string) model.Application {
	fico := 700
	return model.Application{
		ID:                  "app-1",
		Status:              mustStatus(t, status),
		RequestedAmount:     decimal.NewFromInt(50000),
		RequestedTermMonths: 36,
		Guarantor:           model.Guarantor{FICOScore: &fico},
	}
}

func testOrchestrator(appRepo *fakeApplicationRepo, catalogRepo *fakeCatalogRepo, runRepo *fakeRunRepo, publisher *fakePublisher) *UnderwritingOrchestrator {
	clock := fixedClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	engine := ruleengine.NewEngine(ruleengine.NewDefaultRegistry(), clock)
	m := matcher.New(engine, clock)
	return New(appRepo, catalogRepo, runRepo, publisher, m, clock)
}

func TestRunUnderwritingNoLendersCompletesWithZeroCounts(t *testing.T) {
	appRepo := &fakeApplicationRepo{app: testApplication(t, "Submitted")}
	catalogRepo := &fakeCatalogRepo{}
	runRepo := &fakeRunRepo{}
	publisher := &fakePublisher{}
	orch := testOrchestrator(appRepo, catalogRepo, runRepo, publisher)

	run, err := orch.RunUnderwriting(context.Background(), "app-1", nil)
	require.NoError(t, err)
	assert.True(t, run.Status().Equal(valueobject.RunStatusCompleted))
	assert.Equal(t, 0, run.MatchedCount())
	assert.Equal(t, 0, run.RejectedCount())
	assert.Equal(t, "In Underwriting", appRepo.updatedStatus)
	assert.Empty(t, run.DomainEvents())
}

func TestRunUnderwritingWithEligibleLenderPersistsAndPublishes(t *testing.T) {
	appRepo := &fakeApplicationRepo{app: testApplication(t, "Submitted")}
	program := model.NewProgram(model.Program{
		ID:          "program-1",
		LenderID:    "lender-1",
		Active:      true,
		MinFitScore: decimal.NewFromInt(0),
		Rules: []model.Rule{
			{
				ID:       "rule-1",
				Kind:     mustKindFor(t, "min_fico"),
				RuleName: "min_fico",
				Criteria: map[string]any{"min_score": float64(600)},
				Weight:   decimal.NewFromInt(1),
				Active:   true,
			},
		},
	}, 0)
	catalogRepo := &fakeCatalogRepo{lenders: []model.Lender{
		{ID: "lender-1", Name: "Lender One", Active: true, Programs: []model.Program{program}},
	}}
	runRepo := &fakeRunRepo{}
	publisher := &fakePublisher{}
	orch := testOrchestrator(appRepo, catalogRepo, runRepo, publisher)

	run, err := orch.RunUnderwriting(context.Background(), "app-1", nil)
	require.NoError(t, err)
	assert.True(t, run.Status().Equal(valueobject.RunStatusCompleted))
	assert.Equal(t, 1, run.MatchedCount())
	assert.Equal(t, 0, run.RejectedCount())
	require.Len(t, runRepo.insertedResults, 1)
	assert.True(t, runRepo.insertedResults[0].IsEligible)
	require.Len(t, runRepo.insertedEvals, 1)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "underwriting.run.completed", publisher.published[0].EventType())
}

func TestRunUnderwritingRollsBackMatchResultsOnPartialPersistFailure(t *testing.T) {
	appRepo := &fakeApplicationRepo{app: testApplication(t, "Submitted")}
	rule := model.Rule{
		ID:       "rule-1",
		Kind:     mustKindFor(t, "min_fico"),
		RuleName: "min_fico",
		Criteria: map[string]any{"min_score": float64(600)},
		Weight:   decimal.NewFromInt(1),
		Active:   true,
	}
	program := func(id, lenderID string) model.Program {
		return model.NewProgram(model.Program{
			ID: id, LenderID: lenderID, Active: true,
			MinFitScore: decimal.NewFromInt(0),
			Rules:       []model.Rule{rule},
		}, 0)
	}
	catalogRepo := &fakeCatalogRepo{lenders: []model.Lender{
		{ID: "lender-1", Name: "Lender One", Active: true, Programs: []model.Program{program("program-1", "lender-1")}},
		{ID: "lender-2", Name: "Lender Two", Active: true, Programs: []model.Program{program("program-2", "lender-2")}},
	}}
	runRepo := &fakeRunRepo{failEvaluationsForLender: "lender-2"}
	publisher := &fakePublisher{}
	orch := testOrchestrator(appRepo, catalogRepo, runRepo, publisher)

	_, err := orch.RunUnderwriting(context.Background(), "app-1", nil)
	require.Error(t, err)

	require.NotEmpty(t, runRepo.savedRuns)
	lastSaved := runRepo.savedRuns[len(runRepo.savedRuns)-1]
	assert.True(t, lastSaved.Status().Equal(valueobject.RunStatusFailed))

	// The transaction rolled back as a unit: lender-1's match result (which
	// landed in the same batch before lender-2's evaluations failed) must
	// not be left behind.
	assert.Empty(t, runRepo.insertedResults)
	assert.Empty(t, runRepo.insertedEvals)
}

func TestRunUnderwritingDoesNotPromoteNonSubmittedApplication(t *testing.T) {
	appRepo := &fakeApplicationRepo{app: testApplication(t, "Draft")}
	catalogRepo := &fakeCatalogRepo{}
	runRepo := &fakeRunRepo{}
	publisher := &fakePublisher{}
	orch := testOrchestrator(appRepo, catalogRepo, runRepo, publisher)

	_, err := orch.RunUnderwriting(context.Background(), "app-1", nil)
	require.NoError(t, err)
	assert.Empty(t, appRepo.updatedStatus)
}

func TestRerunUnderwritingStampsMetadata(t *testing.T) {
	appRepo := &fakeApplicationRepo{app: testApplication(t, "Submitted")}
	catalogRepo := &fakeCatalogRepo{}
	runRepo := &fakeRunRepo{}
	publisher := &fakePublisher{}
	orch := testOrchestrator(appRepo, catalogRepo, runRepo, publisher)

	run, err := orch.RerunUnderwriting(context.Background(), "app-1", "manual retry")
	require.NoError(t, err)
	assert.True(t, run.Status().Equal(valueobject.RunStatusCompleted))
}

func mustKindFor(t *testing.T, s string) valueobject.RuleKind {
	t.Helper()
	k, err := valueobject.NewRuleKind(s)
	require.NoError(t, err)
	return k
}
