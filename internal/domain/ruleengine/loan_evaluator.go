package ruleengine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// LoanEvaluator handles the loan rule family: min/max_loan_amount,
// min/max_loan_term, min_down_payment, max_ltv. None of these allow
// partial credit.
type LoanEvaluator struct{}

func (LoanEvaluator) Evaluate(ctx Context) Result {
	switch {
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMinLoanAmount):
		return evaluateBound(ctx, "min_loan_amount", "min_amount", requestedAmountOf(ctx), true)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMaxLoanAmount):
		return evaluateBound(ctx, "max_loan_amount", "max_amount", requestedAmountOf(ctx), false)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMinLoanTerm):
		return evaluateIntBound(ctx, "min_loan_term", "min_months", ctx.Application.RequestedTermMonths, true)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMaxLoanTerm):
		return evaluateIntBound(ctx, "max_loan_term", "max_months", ctx.Application.RequestedTermMonths, false)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMinDownPayment):
		return evaluateMinDownPayment(ctx)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMaxLTV):
		return evaluateMaxLTV(ctx)
	}
	panic(fmt.Sprintf("loan evaluator does not handle rule kind %q", ctx.Rule.Kind))
}

func requestedAmountOf(ctx Context) float64 {
	f, _ := ctx.Application.RequestedAmount.Float64()
	return f
}

// evaluateBound is shared by min_loan_amount/max_loan_amount. lowerBound
// selects whether actual must be >= threshold (true) or <= threshold (false).
func evaluateBound(ctx Context, ruleName, criteriaKey string, actual float64, lowerBound bool) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	threshold, err := criteriaFloat(ctx.Rule.Criteria, criteriaKey)
	if err != nil {
		return badCriteria(ruleName, weight, mandatory, err)
	}
	var passed bool
	if lowerBound {
		passed = actual >= threshold
	} else {
		passed = actual <= threshold
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("%s: actual %.2f against threshold %.2f", ruleName, actual, threshold),
		Evidence: map[string]any{"actual": actual, "required": threshold},
	}
}

func evaluateIntBound(ctx Context, ruleName, criteriaKey string, actual int, lowerBound bool) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	threshold, err := criteriaInt(ctx.Rule.Criteria, criteriaKey)
	if err != nil {
		return badCriteria(ruleName, weight, mandatory, err)
	}
	var passed bool
	if lowerBound {
		passed = actual >= threshold
	} else {
		passed = actual <= threshold
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("%s: actual %d against threshold %d", ruleName, actual, threshold),
		Evidence: map[string]any{"actual": actual, "required": threshold},
	}
}

func evaluateMinDownPayment(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	minPct, err := criteriaFloat(ctx.Rule.Criteria, "min_percentage")
	if err != nil {
		return badCriteria("min_down_payment", weight, mandatory, err)
	}
	actualPct := 0.0
	if ctx.Application.DownPaymentPercentage != nil {
		actualPct, _ = ctx.Application.DownPaymentPercentage.Float64()
	}
	passed := actualPct >= minPct
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("down payment %.2f%% against minimum %.2f%%", actualPct, minPct),
		Evidence: map[string]any{"actual": actualPct, "required": minPct},
	}
}

func evaluateMaxLTV(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	maxPct, err := criteriaFloat(ctx.Rule.Criteria, "max_percentage")
	if err != nil {
		return badCriteria("max_ltv", weight, mandatory, err)
	}
	cost, _ := ctx.Equipment.Cost.Float64()
	if cost == 0 {
		return Result{
			Passed: false, Score: decimal.Zero, Weight: weight, Mandatory: mandatory,
			Reason:   "LTV undefined: equipment cost cannot be zero",
			Evidence: map[string]any{"required": maxPct},
		}
	}
	requested, _ := ctx.Application.RequestedAmount.Float64()
	actualLTV := requested / cost * 100
	passed := actualLTV <= maxPct
	evidence := map[string]any{"actual": actualLTV, "required": maxPct}
	if !passed {
		evidence["excess"] = actualLTV - maxPct
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("loan-to-value %.2f%% against maximum %.2f%%", actualLTV, maxPct),
		Evidence: evidence,
	}
}
