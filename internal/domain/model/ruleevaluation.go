package model

import "github.com/shopspring/decimal"

// RuleEvaluation is one per-rule audit record produced by the rule engine
// (C2) for transparency. The rule name and kind are denormalized so the
// record survives deletion of the originating Rule (§3 lifecycle notes).
type RuleEvaluation struct {
	ID            string
	MatchResultID string
	RuleID        *string
	RuleName      string
	RuleType      string
	Passed        bool
	Score         decimal.Decimal
	Weight        decimal.Decimal
	Mandatory     bool
	Reason        string
	Evidence      map[string]any
}
