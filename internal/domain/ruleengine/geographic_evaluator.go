package ruleengine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// GeographicEvaluator handles the rule-level geographic/industry family:
// excluded_states, excluded_industries, allowed_states, allowed_industries.
// Distinct from the lender-level exclusions checked in Tier 1 of the
// matcher — this evaluator handles per-program criteria.
type GeographicEvaluator struct{}

func (GeographicEvaluator) Evaluate(ctx Context) Result {
	switch {
	case ctx.Rule.Kind.Equal(valueobject.RuleKindExcludedStates):
		return evaluateStateList(ctx, "excluded_states", "states", false)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindAllowedStates):
		return evaluateStateList(ctx, "allowed_states", "states", true)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindExcludedIndustries):
		return evaluateIndustryList(ctx, "excluded_industries", "industries", false)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindAllowedIndustries):
		return evaluateIndustryList(ctx, "allowed_industries", "industries", true)
	}
	panic(fmt.Sprintf("geographic evaluator does not handle rule kind %q", ctx.Rule.Kind))
}

func evaluateStateList(ctx Context, ruleName, criteriaKey string, membershipMeansPass bool) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	states, ok := criteriaStringSlice(ctx.Rule.Criteria, criteriaKey)
	if !ok {
		return badCriteria(ruleName, weight, mandatory, fmt.Errorf("missing required criteria key %q", criteriaKey))
	}
	actual := strings.ToUpper(ctx.Business.State)
	normalized := make([]string, len(states))
	for i, s := range states {
		normalized[i] = strings.ToUpper(s)
	}
	member := containsFold(normalized, actual)
	passed := member == membershipMeansPass
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("business state %q against %s", actual, ruleName),
		Evidence: map[string]any{"actual": actual, "list": normalized},
	}
}

func evaluateIndustryList(ctx Context, ruleName, criteriaKey string, membershipMeansPass bool) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	industries, ok := criteriaStringSlice(ctx.Rule.Criteria, criteriaKey)
	if !ok {
		return badCriteria(ruleName, weight, mandatory, fmt.Errorf("missing required criteria key %q", criteriaKey))
	}
	actual := ctx.Business.Industry
	member := containsFold(industries, actual)
	passed := member == membershipMeansPass
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("business industry %q against %s", actual, ruleName),
		Evidence: map[string]any{"actual": actual, "list": industries},
	}
}
