package matcher

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/ruleengine"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func mustKind(t *testing.T, s string) valueobject.RuleKind {
	t.Helper()
	k, err := valueobject.NewRuleKind(s)
	require.NoError(t, err)
	return k
}

func mustLegalStructure(t *testing.T, s string) valueobject.LegalStructure {
	t.Helper()
	v, err := valueobject.NewLegalStructure(s)
	require.NoError(t, err)
	return v
}

func newMatcher(t *testing.T) *Matcher {
	t.Helper()
	engine := ruleengine.NewEngine(ruleengine.NewDefaultRegistry(), fixedClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	return New(engine, fixedClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
}

func baseApplication(t *testing.T) model.Application {
	fico := 700
	return model.Application{
		ID:                  "app-1",
		RequestedAmount:     decimal.NewFromInt(50000),
		RequestedTermMonths: 36,
		Business: model.Business{
			State:          "CA",
			Industry:       "Manufacturing",
			LegalStructure: mustLegalStructure(t, "LLC"),
		},
		Guarantor: model.Guarantor{FICOScore: &fico},
		Equipment: model.Equipment{
			Condition:        mustKindCondition(t, "Used"),
			YearManufactured: func() *int { v := 2022; return &v }(),
		},
	}
}

func mustKindCondition(t *testing.T, s string) valueobject.Condition {
	t.Helper()
	c, err := valueobject.NewCondition(s)
	require.NoError(t, err)
	return c
}

func activeProgram(t *testing.T) model.Program {
	return model.NewProgram(model.Program{
		ID:          "program-1",
		LenderID:    "lender-1",
		Active:      true,
		MinFitScore: decimal.NewFromInt(0),
		RateMetadata: model.RateMetadata{
			BaseRates: []model.BaseRateRow{
				{MinAmount: decimal.Zero, MaxAmount: decimal.NewFromInt(100000), Rate: decimal.NewFromFloat(7.0)},
			},
		},
		Rules: []model.Rule{
			{
				ID:       "rule-1",
				Kind:     mustKind(t, "min_fico"),
				RuleName: "min_fico",
				Criteria: map[string]any{"min_score": float64(600)},
				Weight:   decimal.NewFromInt(1),
				Active:   true,
			},
		},
	}, 0)
}

func TestMatchApplicationToLendersTier1RejectsInactiveLender(t *testing.T) {
	m := newMatcher(t)
	lenders := []model.Lender{
		{ID: "lender-1", Name: "Inactive Lender", Active: false},
	}
	matches := m.MatchApplicationToLenders(baseApplication(t), lenders)
	require.Len(t, matches, 1)
	assert.False(t, matches[0].IsEligible)
	require.NotNil(t, matches[0].RejectionTier)
	assert.Equal(t, 1, *matches[0].RejectionTier)
}

func TestMatchApplicationToLendersTier1RejectsExcludedState(t *testing.T) {
	m := newMatcher(t)
	lenders := []model.Lender{
		{ID: "lender-1", Name: "Regional Lender", Active: true, ExcludedStates: []string{"CA"}},
	}
	matches := m.MatchApplicationToLenders(baseApplication(t), lenders)
	require.Len(t, matches, 1)
	assert.False(t, matches[0].IsEligible)
	assert.Equal(t, 1, *matches[0].RejectionTier)
}

func TestMatchApplicationToLendersTier2RejectsNoEligiblePrograms(t *testing.T) {
	m := newMatcher(t)
	program := activeProgram(t)
	program.EligibilityConditions.LegalStructures = []string{"Corporation"}
	lenders := []model.Lender{
		{ID: "lender-1", Name: "Lender", Active: true, Programs: []model.Program{program}},
	}
	matches := m.MatchApplicationToLenders(baseApplication(t), lenders)
	require.Len(t, matches, 1)
	assert.False(t, matches[0].IsEligible)
	require.NotNil(t, matches[0].RejectionTier)
	assert.Equal(t, 2, *matches[0].RejectionTier)
}

func TestMatchApplicationToLendersTier3EligibleEnrichesScoring(t *testing.T) {
	m := newMatcher(t)
	lenders := []model.Lender{
		{ID: "lender-1", Name: "Lender", Active: true, Programs: []model.Program{activeProgram(t)}},
	}
	matches := m.MatchApplicationToLenders(baseApplication(t), lenders)
	require.Len(t, matches, 1)
	match := matches[0]
	assert.True(t, match.IsEligible)
	require.NotNil(t, match.EstimatedRate)
	assert.True(t, match.EstimatedRate.Equal(decimal.NewFromFloat(7.0)))
	require.NotNil(t, match.EstimatedMonthlyPayment)
	require.NotNil(t, match.ApprovalProbability)
	assert.Equal(t, "Near-Prime", match.CreditTier)
}

func TestMatchApplicationToLendersOrdersEligibleFirstByFitScore(t *testing.T) {
	m := newMatcher(t)

	lenders := []model.Lender{
		{ID: "lender-reject", Name: "Rejecting Lender", Active: true, ExcludedStates: []string{"CA"}},
		{ID: "lender-ok", Name: "Accepting Lender", Active: true, Programs: []model.Program{activeProgram(t)}},
	}
	matches := m.MatchApplicationToLenders(baseApplication(t), lenders)
	require.Len(t, matches, 2)
	assert.True(t, matches[0].IsEligible)
	assert.False(t, matches[1].IsEligible)
}
