package model

import "github.com/shopspring/decimal"

// Lender is a catalog entity that may finance an application. A read-only
// catalog input, owning its active Programs.
type Lender struct {
	ID                 string
	Name               string
	Description        string
	Active             bool
	MinLoanAmount      *decimal.Decimal
	MaxLoanAmount      *decimal.Decimal
	ExcludedStates     []string
	ExcludedIndustries []string
	Programs           []Program
}
