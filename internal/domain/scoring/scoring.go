// Package scoring implements rate resolution with conditional adjustments,
// the approval-probability heuristic, and the supplemental credit-tier
// classification.
package scoring

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
)

// AdjustmentContext carries the variables the adjustment-condition parser
// may reference: equipment_age, fico.
type AdjustmentContext struct {
	EquipmentAge *int
	FICO         *int
}

// FindBaseRate linearly scans rateMetadata.BaseRates for the first row
// whose [min,max] amount range contains requestedAmount (inclusive), and
// whose term bounds (if set) contain requestedTermMonths. Returns
// (rate, false) when no row matches.
func FindBaseRate(rateMetadata model.RateMetadata, requestedAmount decimal.Decimal, requestedTermMonths int) (decimal.Decimal, bool) {
	for _, row := range rateMetadata.BaseRates {
		if requestedAmount.LessThan(row.MinAmount) || requestedAmount.GreaterThan(row.MaxAmount) {
			continue
		}
		if row.MinTerm != nil && requestedTermMonths < *row.MinTerm {
			continue
		}
		if row.MaxTerm != nil && requestedTermMonths > *row.MaxTerm {
			continue
		}
		return row.Rate, true
	}
	return decimal.Zero, false
}

// EstimateRate resolves the base rate and applies every adjustment whose
// condition evaluates true, clamping the result to >= 0. Returns
// (rate, false) when no base rate row matches.
func EstimateRate(rateMetadata model.RateMetadata, requestedAmount decimal.Decimal, requestedTermMonths int, adjCtx AdjustmentContext) (decimal.Decimal, bool) {
	base, ok := FindBaseRate(rateMetadata, requestedAmount, requestedTermMonths)
	if !ok {
		return decimal.Zero, false
	}
	rate := base
	for _, adj := range rateMetadata.Adjustments {
		if evaluateAdjustmentCondition(adj.Condition, adjCtx) {
			rate = rate.Add(adj.Delta)
		}
	}
	if rate.LessThan(decimal.Zero) {
		rate = decimal.Zero
	}
	return rate.Round(2), true
}

// evaluateAdjustmentCondition is the minimal, deliberately non-extensible
// string parser for "<var> <op> <int>" conditions. Unparseable or
// non-matching conditions are false, never an error.
func evaluateAdjustmentCondition(condition string, ctx AdjustmentContext) bool {
	cond := strings.ToLower(strings.TrimSpace(condition))

	var op string
	for _, candidate := range []string{">=", "<=", ">", "<"} {
		if strings.Contains(cond, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return false
	}

	parts := strings.SplitN(cond, op, 2)
	if len(parts) != 2 {
		return false
	}
	varName := strings.TrimSpace(parts[0])
	threshold, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return false
	}

	var actual int
	switch varName {
	case "equipment_age":
		if ctx.EquipmentAge == nil {
			return false
		}
		actual = *ctx.EquipmentAge
	case "fico":
		if ctx.FICO == nil {
			return false
		}
		actual = *ctx.FICO
	default:
		return false
	}

	switch op {
	case ">=":
		return actual >= threshold
	case "<=":
		return actual <= threshold
	case ">":
		return actual > threshold
	case "<":
		return actual < threshold
	}
	return false
}

// ApprovalProbability is a piecewise-linear heuristic over the fit score,
// returning a value in [0,100] quantized to two decimal digits.
func ApprovalProbability(mandatoryAllPassed bool, fitScore decimal.Decimal) decimal.Decimal {
	if !mandatoryAllPassed {
		return decimal.Zero
	}
	ten, nineteen, sixty, hundred := decimal.NewFromInt(10), decimal.NewFromInt(19), decimal.NewFromInt(60), decimal.NewFromInt(100)

	var prob decimal.Decimal
	switch {
	case fitScore.GreaterThanOrEqual(decimal.NewFromInt(90)):
		prob = decimal.NewFromInt(90).Add(fitScore.Sub(decimal.NewFromInt(90)))
		if prob.GreaterThan(hundred) {
			prob = hundred
		}
	case fitScore.GreaterThanOrEqual(decimal.NewFromInt(80)):
		prob = decimal.NewFromInt(70).Add(fitScore.Sub(decimal.NewFromInt(80)).Div(ten).Mul(nineteen))
	case fitScore.GreaterThanOrEqual(decimal.NewFromInt(70)):
		prob = decimal.NewFromInt(50).Add(fitScore.Sub(decimal.NewFromInt(70)).Div(ten).Mul(nineteen))
	case fitScore.GreaterThanOrEqual(sixty):
		prob = decimal.NewFromInt(30).Add(fitScore.Sub(sixty).Div(ten).Mul(nineteen))
	default:
		prob = ten.Add(fitScore.Div(sixty).Mul(nineteen))
		if prob.LessThan(ten) {
			prob = ten
		}
	}
	return prob.Round(2)
}

// CreditTier is the supplemental Prime/Near-Prime/Subprime/Deep-Subprime
// classification. It is informational only — it never gates eligibility
// or the fit score.
type CreditTier int

const (
	CreditTierUnclassified CreditTier = iota
	CreditTierDeepSubprime
	CreditTierSubprime
	CreditTierNearPrime
	CreditTierPrime
)

func (t CreditTier) String() string {
	switch t {
	case CreditTierPrime:
		return "Prime"
	case CreditTierNearPrime:
		return "Near-Prime"
	case CreditTierSubprime:
		return "Subprime"
	case CreditTierDeepSubprime:
		return "Deep-Subprime"
	default:
		return ""
	}
}

func ficoTier(fico int) CreditTier {
	switch {
	case fico >= 720:
		return CreditTierPrime
	case fico >= 680:
		return CreditTierNearPrime
	case fico >= 640:
		return CreditTierSubprime
	default:
		return CreditTierDeepSubprime
	}
}

func payNetTier(paynet int) CreditTier {
	switch {
	case paynet >= 80:
		return CreditTierPrime
	case paynet >= 60:
		return CreditTierNearPrime
	case paynet >= 40:
		return CreditTierSubprime
	default:
		return CreditTierDeepSubprime
	}
}

// ClassifyCreditTier takes the best (numerically higher) of the FICO and
// PayNet tier classifications when both scores are present.
func ClassifyCreditTier(fico, paynet *int) CreditTier {
	var best CreditTier = CreditTierUnclassified
	if fico != nil {
		if t := ficoTier(*fico); t > best {
			best = t
		}
	}
	if paynet != nil {
		if t := payNetTier(*paynet); t > best {
			best = t
		}
	}
	return best
}
