package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// Application is the loan application being underwritten, with its nested
// business, guarantor, and equipment eagerly attached. A read-only catalog
// input: the matching core never mutates it, except to promote its status
// via the orchestrator once a run's results are persisted (see usecase
// package).
type Application struct {
	ID                      string
	ApplicationNumber       string
	Status                  valueobject.ApplicationStatus
	RequestedAmount         decimal.Decimal
	RequestedTermMonths     int
	DownPaymentPercentage   *decimal.Decimal
	DownPaymentAmount       *decimal.Decimal
	ComparableDebtPayments  *decimal.Decimal
	Purpose                 string
	SubmittedAt             *time.Time
	Business                Business
	Guarantor               Guarantor
	Equipment               Equipment
}

// EffectiveDownPaymentAmount resolves the down payment amount: if both
// amount and percentage are present, amount must not exceed the requested
// amount; if only percentage is given, amount is derived as requested ×
// percentage/100.
func (a Application) EffectiveDownPaymentAmount() (decimal.Decimal, error) {
	switch {
	case a.DownPaymentAmount != nil && a.DownPaymentPercentage != nil:
		if a.DownPaymentAmount.GreaterThan(a.RequestedAmount) {
			return decimal.Zero, errors.New("down payment amount exceeds requested amount")
		}
		return *a.DownPaymentAmount, nil
	case a.DownPaymentAmount != nil:
		return *a.DownPaymentAmount, nil
	case a.DownPaymentPercentage != nil:
		return a.RequestedAmount.Mul(*a.DownPaymentPercentage).Div(decimal.NewFromInt(100)), nil
	default:
		return decimal.Zero, nil
	}
}

// NetFinancedAmount is requested amount minus the effective down payment.
func (a Application) NetFinancedAmount() (decimal.Decimal, error) {
	down, err := a.EffectiveDownPaymentAmount()
	if err != nil {
		return decimal.Zero, err
	}
	return a.RequestedAmount.Sub(down), nil
}
