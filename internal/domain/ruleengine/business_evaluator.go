package ruleengine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

const (
	timeInBusinessPartialCreditBandMonths = 6
	minRevenuePartialCreditBandPercent    = 20
)

// BusinessEvaluator handles the business rule family: time_in_business,
// min_revenue, legal_structure.
type BusinessEvaluator struct{}

func (BusinessEvaluator) Evaluate(ctx Context) Result {
	switch {
	case ctx.Rule.Kind.Equal(valueobject.RuleKindTimeInBusiness):
		return evaluateTimeInBusiness(ctx)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindMinRevenue):
		return evaluateMinRevenue(ctx)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindLegalStructure):
		return evaluateLegalStructure(ctx)
	}
	panic(fmt.Sprintf("business evaluator does not handle rule kind %q", ctx.Rule.Kind))
}

// evaluateTimeInBusiness requires exactly one of min_years/min_months.
func evaluateTimeInBusiness(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	yearsVal, hasYears := criteriaFloatOptional(ctx.Rule.Criteria, "min_years")
	monthsVal, hasMonths := criteriaFloatOptional(ctx.Rule.Criteria, "min_months")
	if hasYears == hasMonths {
		return badCriteria("time_in_business", weight, mandatory,
			fmt.Errorf("exactly one of min_years or min_months is required"))
	}
	minMonths := int(monthsVal)
	if hasYears {
		minMonths = int(yearsVal * 12)
	}

	actual := ctx.Business.MonthsInBusiness(ctx.Clock.Now())
	passed := actual >= minMonths
	gap := minMonths - actual
	partial := decimal.Zero
	if !passed {
		partial = partialCreditBand(decimal.NewFromInt(int64(gap)), decimal.NewFromInt(timeInBusinessPartialCreditBandMonths))
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, partial), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("%d months in business against minimum %d", actual, minMonths),
		Evidence: map[string]any{"actual_months": actual, "required_months": minMonths, "gap_months": gap},
	}
}

func evaluateMinRevenue(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	minAmount, err := criteriaFloat(ctx.Rule.Criteria, "min_amount")
	if err != nil {
		return badCriteria("min_revenue", weight, mandatory, err)
	}
	if ctx.Business.AnnualRevenue == nil {
		return Result{
			Passed: false, Score: decimal.Zero, Weight: weight, Mandatory: mandatory,
			Reason:   "annual revenue is not available",
			Evidence: map[string]any{"required": minAmount},
		}
	}
	minRevenue := decimal.NewFromFloat(minAmount)
	actual := *ctx.Business.AnnualRevenue
	passed := actual.GreaterThanOrEqual(minRevenue)
	partial := decimal.Zero
	if !passed {
		shortfallPct := minRevenue.Sub(actual).Div(minRevenue).Mul(decimal.NewFromInt(100))
		partial = partialCreditBand(shortfallPct, decimal.NewFromInt(minRevenuePartialCreditBandPercent))
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, partial), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("annual revenue %s against minimum %s", actual.StringFixed(2), minRevenue.StringFixed(2)),
		Evidence: map[string]any{"actual": actual, "required": minAmount},
	}
}

func evaluateLegalStructure(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	allowed, ok := criteriaStringSlice(ctx.Rule.Criteria, "allowed_structures")
	if !ok {
		return badCriteria("legal_structure", weight, mandatory,
			fmt.Errorf("missing required criteria key \"allowed_structures\""))
	}
	actual := ctx.Business.LegalStructure.String()
	passed := containsFold(allowed, actual)
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("legal structure %q against allowed list", actual),
		Evidence: map[string]any{"actual": actual, "required": allowed},
	}
}
