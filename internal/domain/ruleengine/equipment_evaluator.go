package ruleengine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

const equipmentAgePartialCreditBandYears = 2

// EquipmentEvaluator handles the equipment rule family: equipment_type,
// equipment_age, equipment_condition.
type EquipmentEvaluator struct{}

func (EquipmentEvaluator) Evaluate(ctx Context) Result {
	switch {
	case ctx.Rule.Kind.Equal(valueobject.RuleKindEquipmentType):
		return evaluateEquipmentType(ctx)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindEquipmentAge):
		return evaluateEquipmentAge(ctx)
	case ctx.Rule.Kind.Equal(valueobject.RuleKindEquipmentCondition):
		return evaluateEquipmentCondition(ctx)
	}
	panic(fmt.Sprintf("equipment evaluator does not handle rule kind %q", ctx.Rule.Kind))
}

// evaluateEquipmentType requires at least one of allowed_types/excluded_types.
// Excluded wins over allowed. Case-insensitive compare.
func evaluateEquipmentType(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	allowed, hasAllowed := criteriaStringSlice(ctx.Rule.Criteria, "allowed_types")
	excluded, hasExcluded := criteriaStringSlice(ctx.Rule.Criteria, "excluded_types")
	if !hasAllowed && !hasExcluded {
		return badCriteria("equipment_type", weight, mandatory,
			fmt.Errorf("at least one of allowed_types or excluded_types is required"))
	}
	actual := ctx.Equipment.EquipmentType
	if hasExcluded && containsFold(excluded, actual) {
		return Result{
			Passed: false, Score: decimal.Zero, Weight: weight, Mandatory: mandatory,
			Reason:   fmt.Sprintf("equipment type %q is excluded", actual),
			Evidence: map[string]any{"actual": actual, "excluded": excluded},
		}
	}
	passed := true
	if hasAllowed {
		passed = containsFold(allowed, actual)
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("equipment type %q against allowed list", actual),
		Evidence: map[string]any{"actual": actual, "allowed": allowed},
	}
}

func evaluateEquipmentAge(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	maxAge, err := criteriaInt(ctx.Rule.Criteria, "max_age_years")
	if err != nil {
		return badCriteria("equipment_age", weight, mandatory, err)
	}
	age, ok := ctx.Equipment.AgeYears(ctx.Clock.Now().Year())
	if !ok {
		return Result{
			Passed: false, Score: decimal.Zero, Weight: weight, Mandatory: mandatory,
			Reason:   "equipment age unknown: year manufactured not recorded",
			Evidence: map[string]any{"required_max_age": maxAge},
		}
	}
	passed := age <= maxAge
	excess := age - maxAge
	partial := decimal.Zero
	if !passed {
		partial = partialCreditBand(decimal.NewFromInt(int64(excess)), decimal.NewFromInt(equipmentAgePartialCreditBandYears))
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, partial), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("equipment age %d years against maximum %d years", age, maxAge),
		Evidence: map[string]any{"actual": age, "required": maxAge},
	}
}

func evaluateEquipmentCondition(ctx Context) Result {
	weight, mandatory := ctx.Rule.Weight, ctx.Rule.Mandatory
	allowed, hasAllowed := criteriaStringSlice(ctx.Rule.Criteria, "allowed_conditions")
	excluded, hasExcluded := criteriaStringSlice(ctx.Rule.Criteria, "excluded_conditions")
	if !hasAllowed && !hasExcluded {
		return badCriteria("equipment_condition", weight, mandatory,
			fmt.Errorf("at least one of allowed_conditions or excluded_conditions is required"))
	}
	actual := ctx.Equipment.Condition.String()
	if hasExcluded && containsFold(excluded, actual) {
		return Result{
			Passed: false, Score: decimal.Zero, Weight: weight, Mandatory: mandatory,
			Reason:   fmt.Sprintf("equipment condition %q is excluded", actual),
			Evidence: map[string]any{"actual": actual, "excluded": excluded},
		}
	}
	passed := true
	if hasAllowed {
		passed = containsFold(allowed, actual)
	}
	return Result{
		Passed: passed, Score: calculateScore(passed, weight, decimal.Zero), Weight: weight, Mandatory: mandatory,
		Reason:   fmt.Sprintf("equipment condition %q against allowed list", actual),
		Evidence: map[string]any{"actual": actual, "allowed": allowed},
	}
}
