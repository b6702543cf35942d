// Package matcher implements the three-tier lender filter/select/score
// pipeline: a fast per-lender filter, program eligibility selection, and
// full rule evaluation of the surviving programs.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/port"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/ruleengine"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/scoring"
)

// Match is one lender's outcome before it is translated into a persisted
// model.MatchResult by the orchestrator.
type Match struct {
	Lender                  model.Lender
	Program                 *model.Program
	IsEligible              bool
	FitScore                decimal.Decimal
	RejectionReason         string
	RejectionTier           *int
	EstimatedRate           *decimal.Decimal
	EstimatedMonthlyPayment *decimal.Decimal
	ApprovalProbability     *decimal.Decimal
	CreditTier              string
	TotalRulesEvaluated     int
	RulesPassed             int
	RulesFailed             int
	MandatoryAllPassed      bool
	RuleResults             []ruleengine.RuleResult
}

// Matcher is C4.
type Matcher struct {
	engine *ruleengine.Engine
	clock  port.Clock
}

// New builds a Matcher over the given rule engine and clock.
func New(engine *ruleengine.Engine, clock port.Clock) *Matcher {
	return &Matcher{engine: engine, clock: clock}
}

// MatchApplicationToLenders runs Tier 1/2/3 for every lender in the
// catalog and returns matches ordered eligible-first, descending fit score.
func (m *Matcher) MatchApplicationToLenders(application model.Application, lenders []model.Lender) []Match {
	matches := make([]Match, 0, len(lenders))
	for _, lender := range lenders {
		matches = append(matches, m.matchOne(application, lender))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].IsEligible != matches[j].IsEligible {
			return matches[i].IsEligible
		}
		return matches[i].FitScore.GreaterThan(matches[j].FitScore)
	})
	return matches
}

func (m *Matcher) matchOne(application model.Application, lender model.Lender) Match {
	if reason, ok := tier1Reject(application, lender); ok {
		tier := 1
		return Match{Lender: lender, IsEligible: false, RejectionTier: &tier, RejectionReason: reason}
	}

	eligiblePrograms := tier2EligiblePrograms(application, lender)
	if len(eligiblePrograms) == 0 {
		tier := 2
		return Match{
			Lender: lender, IsEligible: false, RejectionTier: &tier,
			RejectionReason: "No eligible programs match application criteria",
		}
	}

	best, bestEval := m.tier3SelectBest(application, eligiblePrograms)
	match := Match{
		Lender:              lender,
		Program:             &best,
		IsEligible:          bestEval.Eligible,
		FitScore:            bestEval.FitScore,
		TotalRulesEvaluated: bestEval.TotalRules,
		RulesPassed:         bestEval.RulesPassed,
		RulesFailed:         bestEval.RulesFailed,
		MandatoryAllPassed:  bestEval.MandatoryAllPassed,
		RuleResults:         bestEval.RuleResults,
	}

	if !bestEval.Eligible {
		tier := 3
		match.RejectionTier = &tier
		match.RejectionReason = tier3RejectionReason(bestEval, best)
	}

	m.enrichWithScoring(application, &match)
	return match
}

// tier1Reject implements the lender-level fast filter: active flag,
// excluded states, excluded industries, and min/max loan amount band,
// checked in that order. Returns (reason, true) on the first failing check.
func tier1Reject(application model.Application, lender model.Lender) (string, bool) {
	if !lender.Active {
		return fmt.Sprintf("lender %s is not active", lender.Name), true
	}
	state := application.Business.State
	for _, excluded := range lender.ExcludedStates {
		if excluded == state {
			return fmt.Sprintf("business state %s is excluded by lender", state), true
		}
	}
	for _, excluded := range lender.ExcludedIndustries {
		if strings.EqualFold(excluded, application.Business.Industry) {
			return fmt.Sprintf("business industry %s is excluded by lender", application.Business.Industry), true
		}
	}
	if lender.MinLoanAmount != nil && application.RequestedAmount.LessThan(*lender.MinLoanAmount) {
		return fmt.Sprintf("requested amount $%s below lender minimum $%s",
			application.RequestedAmount.StringFixed(2), lender.MinLoanAmount.StringFixed(2)), true
	}
	if lender.MaxLoanAmount != nil && application.RequestedAmount.GreaterThan(*lender.MaxLoanAmount) {
		return fmt.Sprintf("requested amount $%s exceeds lender maximum $%s",
			application.RequestedAmount.StringFixed(2), lender.MaxLoanAmount.StringFixed(2)), true
	}
	return "", false
}

// tier2EligiblePrograms filters the lender's active programs to those
// whose eligibility_conditions are satisfied.
func tier2EligiblePrograms(application model.Application, lender model.Lender) []model.Program {
	eligible := make([]model.Program, 0, len(lender.Programs))
	for _, program := range lender.Programs {
		if !program.Active {
			continue
		}
		if programEligible(application, program.EligibilityConditions) {
			eligible = append(eligible, program)
		}
	}
	return eligible
}

func programEligible(application model.Application, cond model.EligibilityConditions) bool {
	if cond.RequiresPayNet != nil && *cond.RequiresPayNet && application.Guarantor.PayNetScore == nil {
		return false
	}
	if len(cond.LegalStructures) > 0 {
		actual := application.Business.LegalStructure.String()
		match := false
		for _, s := range cond.LegalStructures {
			if s == actual {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	if len(cond.Industries) > 0 {
		if !containsFold(cond.Industries, application.Business.Industry) {
			return false
		}
	}
	if cond.MinRevenue != nil {
		if application.Business.AnnualRevenue == nil || application.Business.AnnualRevenue.LessThan(*cond.MinRevenue) {
			return false
		}
	}
	if cond.HomeownerRequired != nil && *cond.HomeownerRequired && !application.Guarantor.IsHomeowner {
		return false
	}
	if cond.USCitizenRequired != nil && *cond.USCitizenRequired && !application.Guarantor.IsUSCitizen {
		return false
	}
	return true
}

func containsFold(list []string, target string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}

// tier3SelectBest runs rule evaluation over every tier-2-eligible program
// and retains the one with the maximal fit score, ties broken by catalog
// insertion order (first-seen wins).
func (m *Matcher) tier3SelectBest(application model.Application, programs []model.Program) (model.Program, ruleengine.ProgramEvaluationResult) {
	var (
		best     model.Program
		bestEval ruleengine.ProgramEvaluationResult
		bestSeen = false
		bestScore = decimal.NewFromInt(-1)
	)

	for _, program := range programs {
		eval := m.engine.Evaluate(application, application.Business, application.Guarantor, application.Equipment, program)
		if !bestSeen || eval.FitScore.GreaterThan(bestScore) {
			best, bestEval, bestScore, bestSeen = program, eval, eval.FitScore, true
		}
	}
	return best, bestEval
}

// tier3RejectionReason builds the rejection sentence: either the
// semicolon-joined reasons of failing mandatory rules, or a fit-score
// sentence, or a generic fallback.
func tier3RejectionReason(eval ruleengine.ProgramEvaluationResult, program model.Program) string {
	if !eval.MandatoryAllPassed {
		reasons := make([]string, 0)
		for _, rr := range eval.RuleResults {
			if rr.Result.Mandatory && !rr.Result.Passed {
				reasons = append(reasons, rr.Result.Reason)
			}
		}
		if len(reasons) > 0 {
			return ruleengine.JoinSemicolon(reasons)
		}
	}
	if eval.MandatoryAllPassed {
		return fmt.Sprintf("Fit score %s below minimum %s", eval.FitScore.StringFixed(2), program.MinFitScore.StringFixed(2))
	}
	return "Failed to meet program requirements"
}

// enrichWithScoring attaches estimated_rate, approval probability, credit
// tier, and (when a rate is known) an estimated monthly payment — mutates
// match in place.
func (m *Matcher) enrichWithScoring(application model.Application, match *Match) {
	if match.Program == nil {
		return
	}
	var equipmentAge *int
	if age, ok := application.Equipment.AgeYears(m.clock.Now().Year()); ok {
		equipmentAge = &age
	}
	rate, ok := scoring.EstimateRate(
		match.Program.RateMetadata,
		application.RequestedAmount,
		application.RequestedTermMonths,
		scoring.AdjustmentContext{EquipmentAge: equipmentAge, FICO: application.Guarantor.FICOScore},
	)
	if ok {
		match.EstimatedRate = &rate
		financed, err := application.NetFinancedAmount()
		if err == nil {
			payment := model.EstimateMonthlyPayment(financed, rate, application.RequestedTermMonths, m.clock.Now())
			match.EstimatedMonthlyPayment = &payment
		}
	}

	probability := scoring.ApprovalProbability(match.MandatoryAllPassed, match.FitScore)
	match.ApprovalProbability = &probability

	match.CreditTier = scoring.ClassifyCreditTier(application.Guarantor.FICOScore, application.Guarantor.PayNetScore).String()
}
