package model

import (
	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// Equipment describes the asset being financed. A read-only catalog input.
type Equipment struct {
	ID               string
	EquipmentType    string
	Description      string
	Manufacturer     string
	Model            string
	SerialNumber     string
	Condition        valueobject.Condition
	Cost             decimal.Decimal
	YearManufactured *int
}

// AgeYears returns the equipment's age relative to currentYear. It returns
// (age, true) when YearManufactured is present, or (0, true) when the
// condition is New (a brand-new unit with no stamped year is treated as
// age zero). Otherwise it returns (0, false): the age is undefined, and
// ruleengine's equipment_age evaluator fails the rule with an
// "equipment age unknown" reason.
func (e Equipment) AgeYears(currentYear int) (int, bool) {
	if e.YearManufactured != nil {
		age := currentYear - *e.YearManufactured
		if age < 0 {
			age = 0
		}
		return age, true
	}
	if e.Condition.Equal(valueobject.ConditionNew) {
		return 0, true
	}
	return 0, false
}
