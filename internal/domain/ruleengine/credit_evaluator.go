package ruleengine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// ficoPartialCreditBand and payNetPartialCreditBand are the near-miss band
// widths used for min_fico/min_paynet partial-credit scoring.
const (
	ficoPartialCreditBand   = 50
	payNetPartialCreditBand = 20
)

// CreditEvaluator handles the credit rule family: min_fico, min_paynet,
// credit_tier, max_credit_utilization.
type CreditEvaluator struct{}

func (CreditEvaluator) Evaluate(ctx Context) Result {
	switch {
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMinFICO):
		return evaluateMinFICO(ctx)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMinPayNet):
		return evaluateMinPayNet(ctx)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindCreditTier):
		return evaluateCreditTierRule(ctx)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMaxCreditUtilization):
		return evaluateMaxCreditUtilization(ctx)
	}
	panic(fmt.Sprintf("credit evaluator does not handle rule kind %q", ctx.Rule.Kind))
}

func evaluateMinFICO(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	minScore, err := criteriaInt(ctx.Rule.Criteria, "min_score")
	if err != nil {
		return badCriteria("min_fico", weight, mandatory, err)
	}
	if ctx.Guarantor.FICOScore == nil {
		return Result{
			Passed: false, Score: decimal.Zero, Weight: weight, Mandatory: mandatory,
			Reason:   "guarantor FICO score is not available",
			Evidence: map[string]any{"required": minScore},
		}
	}
	actual := *ctx.Guarantor.FICOScore
	passed := actual >= minScore
	gap := minScore - actual
	partial := decimal.Zero
	if !passed {
		partial = partialCreditBand(decimal.NewFromInt(int64(gap)), decimal.NewFromInt(ficoPartialCreditBand))
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, partial), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("FICO score %d against minimum %d", actual, minScore),
		Evidence: map[string]any{"actual": actual, "required": minScore, "gap": gap},
	}
}

func evaluateMinPayNet(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	minScore, err := criteriaInt(ctx.Rule.Criteria, "min_score")
	if err != nil {
		return badCriteria("min_paynet", weight, mandatory, err)
	}
	if ctx.Guarantor.PayNetScore == nil {
		return Result{
			Passed: false, Score: decimal.Zero, Weight: weight, Mandatory: mandatory,
			Reason:   "guarantor PayNet score is not available",
			Evidence: map[string]any{"required": minScore},
		}
	}
	actual := *ctx.Guarantor.PayNetScore
	passed := actual >= minScore
	gap := minScore - actual
	partial := decimal.Zero
	if !passed {
		partial = partialCreditBand(decimal.NewFromInt(int64(gap)), decimal.NewFromInt(payNetPartialCreditBand))
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, partial), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("PayNet score %d against minimum %d", actual, minScore),
		Evidence: map[string]any{"actual": actual, "required": minScore, "gap": gap},
	}
}

// evaluateCreditTierRule requires every specified floor to be met; no
// partial credit. A missing required score fails the rule outright.
func evaluateCreditTierRule(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	minFICO, hasFICO := criteriaFloatOptional(ctx.Rule.Criteria, "min_fico")
	minPayNet, hasPayNet := criteriaFloatOptional(ctx.Rule.Criteria, "min_paynet")

	evidence := map[string]any{}
	passed := true
	reasons := make([]string, 0, 2)

	if hasFICO {
		evidence["required_fico"] = minFICO
		if ctx.Guarantor.FICOScore == nil || float64(*ctx.Guarantor.FICOScore) < minFICO {
			passed = false
			reasons = append(reasons, "FICO below tier floor")
		}
	}
	if hasPayNet {
		evidence["required_paynet"] = minPayNet
		if ctx.Guarantor.PayNetScore == nil || float64(*ctx.Guarantor.PayNetScore) < minPayNet {
			passed = false
			reasons = append(reasons, "PayNet below tier floor")
		}
	}
	if !hasFICO && !hasPayNet {
		passed = false
		reasons = append(reasons, "credit_tier rule specifies no floor")
	}

	reason := "credit tier requirements met"
	if !passed {
		reason = JoinSemicolon(reasons)
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason: reason, Evidence: evidence,
	}
}

func evaluateMaxCreditUtilization(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	maxPct, err := criteriaFloat(ctx.Rule.Criteria, "max_percentage")
	if err != nil {
		return badCriteria("max_credit_utilization", weight, mandatory, err)
	}
	if ctx.Guarantor.CreditUtilizationPercentage == nil {
		passed := !mandatory
		reason := "credit utilization not available"
		return Result{
			Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
			Reason: reason, Evidence: map[string]any{"required": maxPct},
		}
	}
	maxUtilization := decimal.NewFromFloat(maxPct)
	actual := *ctx.Guarantor.CreditUtilizationPercentage
	passed := actual.LessThanOrEqual(maxUtilization)
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("credit utilization %s%% against maximum %s%%", actual.StringFixed(2), maxUtilization.StringFixed(2)),
		Evidence: map[string]any{"actual": actual, "required": maxPct},
	}
}

// JoinSemicolon joins reason strings with "; ", used to build a combined
// rejection reason from multiple failing mandatory rules.
func JoinSemicolon(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "; "
		}
		out += p
	}
	return out
}
