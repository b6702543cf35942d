package model

import "github.com/shopspring/decimal"

// MatchResult is one outcome of matching a single lender against an
// application within a run. It is created once by the matcher (C4) and
// persisted verbatim; it is never mutated afterwards.
type MatchResult struct {
	ID                       string
	RunID                    string
	LenderID                 string
	ProgramID                *string
	IsEligible               bool
	FitScore                 decimal.Decimal
	RejectionReason          *string
	RejectionTier            *int
	EstimatedRate            *decimal.Decimal
	EstimatedMonthlyPayment  *decimal.Decimal
	ApprovalProbability      *decimal.Decimal
	CreditTier               string
	TotalRulesEvaluated      int
	RulesPassed              int
	RulesFailed              int
	MandatoryRulesPassed     bool
	RuleEvaluations          []RuleEvaluation
}
