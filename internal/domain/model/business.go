package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// Business describes the applicant entity seeking financing. It is a
// read-only catalog input: the rule engine never mutates it.
type Business struct {
	ID              string
	LegalName       string
	DBAName         string
	LegalStructure  valueobject.LegalStructure
	Industry        string
	EstablishedDate time.Time
	AnnualRevenue   *decimal.Decimal
	State           string
	City            string
	Zip             string
	AddressLine     string
	Phone           string
	Email           string
}

// MonthsInBusiness returns whole months between EstablishedDate and now.
func (b Business) MonthsInBusiness(now time.Time) int {
	years := now.Year() - b.EstablishedDate.Year()
	months := int(now.Month()) - int(b.EstablishedDate.Month())
	total := years*12 + months
	if now.Day() < b.EstablishedDate.Day() {
		total--
	}
	if total < 0 {
		return 0
	}
	return total
}
