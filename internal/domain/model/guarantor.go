package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Guarantor describes the personal guarantor co-signing the application. A
// read-only catalog input.
type Guarantor struct {
	ID                          string
	FirstName                   string
	LastName                    string
	FICOScore                   *int
	PayNetScore                 *int
	CreditUtilizationPercentage *decimal.Decimal
	RevolvingCreditAvailable    *decimal.Decimal
	BankruptcyHistory           bool
	BankruptcyDischargeDate     *time.Time
	IsHomeowner                 bool
	IsUSCitizen                 bool
	Phone                       string
	Email                       string
	AddressLine                 string
}

// FullName concatenates first and last name for display/audit purposes.
func (g Guarantor) FullName() string {
	if g.FirstName == "" {
		return g.LastName
	}
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
