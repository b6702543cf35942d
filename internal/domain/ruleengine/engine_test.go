package ruleengine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func mustRuleKind(t *testing.T, s string) valueobject.RuleKind {
	t.Helper()
	k, err := valueobject.NewRuleKind(s)
	require.NoError(t, err)
	return k
}

func fitApplication() model.Application {
	fico := 700
	return model.Application{
		ID:                  "app-1",
		RequestedAmount:     decimal.NewFromInt(50000),
		RequestedTermMonths: 48,
		Guarantor: model.Guarantor{
			FICOScore: &fico,
		},
	}
}

func baseRule(kind valueobject.RuleKind, criteria map[string]any, weight decimal.Decimal, mandatory bool) model.Rule {
	return model.Rule{
		ID:        "rule-1",
		Kind:      kind,
		RuleName:  kind.String(),
		Criteria:  criteria,
		Weight:    weight,
		Mandatory: mandatory,
		Active:    true,
	}
}

func TestEngineEvaluateAllRulesPass(t *testing.T) {
	registry := NewDefaultRegistry()
	engine := NewEngine(registry, fixedClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})

	program := model.Program{
		ID:          "program-1",
		MinFitScore: decimal.NewFromInt(50),
		Rules: []model.Rule{
			baseRule(mustRuleKind(t, "min_fico"), map[string]any{"min_score": float64(600)}, decimal.NewFromInt(1), true),
		},
	}

	result := engine.Evaluate(fitApplication(), model.Business{}, model.Guarantor{FICOScore: func() *int { v := 700; return &v }()}, model.Equipment{}, program)

	assert.True(t, result.Eligible)
	assert.True(t, result.MandatoryAllPassed)
	assert.Equal(t, 1, result.TotalRules)
	assert.Equal(t, 1, result.RulesPassed)
	assert.Equal(t, 0, result.RulesFailed)
	assert.True(t, result.FitScore.Equal(decimal.NewFromInt(100)))
}

func TestEngineEvaluateMandatoryFailureBlocksEligibility(t *testing.T) {
	registry := NewDefaultRegistry()
	engine := NewEngine(registry, fixedClock{now: time.Now()})

	program := model.Program{
		ID:          "program-2",
		MinFitScore: decimal.NewFromInt(0),
		Rules: []model.Rule{
			baseRule(mustRuleKind(t, "min_fico"), map[string]any{"min_score": float64(750)}, decimal.NewFromInt(1), true),
		},
	}

	fico := 700
	result := engine.Evaluate(fitApplication(), model.Business{}, model.Guarantor{FICOScore: &fico}, model.Equipment{}, program)

	assert.False(t, result.MandatoryAllPassed)
	assert.False(t, result.Eligible)
	assert.Equal(t, 1, result.RulesFailed)
}

func TestEngineEvaluateSkipsInactiveAndUnregisteredRules(t *testing.T) {
	registry := NewDefaultRegistry()
	engine := NewEngine(registry, fixedClock{now: time.Now()})

	inactive := baseRule(mustRuleKind(t, "min_fico"), map[string]any{"min_score": float64(900)}, decimal.NewFromInt(1), true)
	inactive.Active = false

	unregistered := baseRule(mustRuleKind(t, "custom"), map[string]any{}, decimal.NewFromInt(1), true)

	program := model.Program{
		ID:          "program-3",
		MinFitScore: decimal.NewFromInt(0),
		Rules:       []model.Rule{inactive, unregistered},
	}

	fico := 700
	result := engine.Evaluate(fitApplication(), model.Business{}, model.Guarantor{FICOScore: &fico}, model.Equipment{}, program)

	assert.Equal(t, 0, result.TotalRules)
	assert.True(t, result.MandatoryAllPassed)
	assert.True(t, result.Eligible)
}

func TestEngineEvaluateBadCriteriaFailsRuleNotProgram(t *testing.T) {
	registry := NewDefaultRegistry()
	engine := NewEngine(registry, fixedClock{now: time.Now()})

	badRule := baseRule(mustRuleKind(t, "min_fico"), map[string]any{}, decimal.NewFromInt(1), false)

	program := model.Program{
		ID:          "program-4",
		MinFitScore: decimal.NewFromInt(0),
		Rules:       []model.Rule{badRule},
	}

	fico := 700
	result := engine.Evaluate(fitApplication(), model.Business{}, model.Guarantor{FICOScore: &fico}, model.Equipment{}, program)

	require.Len(t, result.RuleResults, 1)
	assert.False(t, result.RuleResults[0].Result.Passed)
	assert.Contains(t, result.RuleResults[0].Result.Reason, "bad rule criteria")
}
