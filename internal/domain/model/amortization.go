package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationEntry is an immutable value object representing one period in
// an amortization schedule.
type AmortizationEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// GenerateAmortizationSchedule computes a standard fixed-payment
// amortization schedule, used to derive the optional estimated monthly
// payment attached to a MatchResult.
//
//	monthlyRate = annualRatePercent / 100 / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
func GenerateAmortizationSchedule(
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termMonths int,
	startDate time.Time,
) []AmortizationEntry {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	annualRate, _ := annualRatePercent.Float64()
	monthlyRate := annualRate / 100.0 / 12.0

	n := float64(termMonths)
	var monthlyPayment decimal.Decimal

	if monthlyRate == 0 {
		monthlyPayment = principal.Div(decimal.NewFromInt(int64(termMonths)))
	} else {
		growthFactor := math.Pow(1+monthlyRate, n)
		paymentFloat := principal.InexactFloat64() * monthlyRate * growthFactor / (growthFactor - 1)
		monthlyPayment = decimal.NewFromFloat(paymentFloat).Round(2)
	}

	schedule := make([]AmortizationEntry, 0, termMonths)
	remaining := principal
	periodRate := decimal.NewFromFloat(monthlyRate)

	for period := 1; period <= termMonths; period++ {
		dueDate := startDate.AddDate(0, period, 0)

		interest := remaining.Mul(periodRate).Round(2)
		principalDue := monthlyPayment.Sub(interest)

		if period == termMonths {
			principalDue = remaining
			interest = remaining.Mul(periodRate).Round(2)
			monthlyPayment = principalDue.Add(interest)
		}

		remaining = remaining.Sub(principalDue)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          dueDate,
			Principal:        principalDue,
			Interest:         interest,
			Total:            principalDue.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}

// EstimateMonthlyPayment returns the level monthly payment for the given
// principal/rate/term (the first entry's Total, or zero if no schedule can
// be generated).
func EstimateMonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int, startDate time.Time) decimal.Decimal {
	schedule := GenerateAmortizationSchedule(principal, annualRatePercent, termMonths, startDate)
	if len(schedule) == 0 {
		return decimal.Zero
	}
	return schedule[0].Total
}
