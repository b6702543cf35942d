package ruleengine

import "github.com/shopspring/decimal"

// Result is the outcome of evaluating one rule against one application.
type Result struct {
	Passed    bool
	Score     decimal.Decimal
	Reason    string
	Evidence  map[string]any
	Weight    decimal.Decimal
	Mandatory bool
}

// calculateScore applies the scoring policy shared by every evaluator:
// a full pass yields 100*weight, a hard fail yields 0, and a near miss may
// yield partialCredit*100*weight when the rule's kind allows partial
// credit (partialCredit in [0,1]).
func calculateScore(passed bool, weight decimal.Decimal, partialCredit decimal.Decimal) decimal.Decimal {
	if passed {
		return decimal.NewFromInt(100).Mul(weight)
	}
	if partialCredit.GreaterThan(decimal.Zero) {
		return decimal.NewFromInt(100).Mul(weight).Mul(partialCredit)
	}
	return decimal.Zero
}

// partialCreditBand computes max(0, 1 - d/B) for a near-miss distance d
// over a band width B.
func partialCreditBand(distance, bandWidth decimal.Decimal) decimal.Decimal {
	if bandWidth.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	credit := decimal.NewFromInt(1).Sub(distance.Div(bandWidth))
	if credit.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return credit
}

func badCriteria(rule string, weight decimal.Decimal, mandatory bool, err error) Result {
	return Result{
		Passed:    false,
		Score:     decimal.Zero,
		Reason:    "bad rule criteria for " + rule + ": " + err.Error(),
		Evidence:  map[string]any{"error": err.Error()},
		Weight:    weight,
		Mandatory: mandatory,
	}
}
