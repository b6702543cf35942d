package model

import "github.com/shopspring/decimal"

// EligibilityConditions is the parsed form of a program's open
// eligibility_conditions mapping. Unknown keys in the raw JSON are ignored
// at parse time (forward compatibility) and never reach this struct.
type EligibilityConditions struct {
	RequiresPayNet    *bool
	LegalStructures   []string
	Industries        []string
	MinRevenue        *decimal.Decimal
	HomeownerRequired *bool
	USCitizenRequired *bool
}

// BaseRateRow is one row of a program's ordered base-rate table.
type BaseRateRow struct {
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	Rate      decimal.Decimal
	MinTerm   *int
	MaxTerm   *int
}

// AdjustmentRow is one conditional rate adjustment.
type AdjustmentRow struct {
	Condition   string
	Delta       decimal.Decimal
	Description string
}

// RateMetadata is the parsed form of a program's rate_metadata JSON.
type RateMetadata struct {
	BaseRates   []BaseRateRow
	Adjustments []AdjustmentRow
}

// Program is a tier within a lender, owning its active Rules.
type Program struct {
	ID                     string
	LenderID               string
	ProgramName            string
	ProgramCode            string
	Description            string
	CreditTier             string
	EligibilityConditions  EligibilityConditions
	RateMetadata           RateMetadata
	MinFitScore            decimal.Decimal
	Active                 bool
	Rules                  []Rule
	// sequence is the catalog insertion order. Tier-3 selection does not
	// read it; it breaks fit-score ties by slice order (first-seen wins).
	sequence int
}

// NewProgram attaches a stable catalog insertion sequence to a Program.
func NewProgram(p Program, sequence int) Program {
	p.sequence = sequence
	return p
}

// Sequence returns the catalog insertion order of this program.
func (p Program) Sequence() int { return p.sequence }
