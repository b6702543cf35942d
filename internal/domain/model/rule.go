package model

import (
	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// Rule is a typed, weighted predicate belonging to a Program. Criteria is
// the raw open mapping as loaded from JSONB; each kind's evaluator parses
// the keys it needs directly from this map (see ruleengine) — a rule is
// evaluated exactly once per run, so there is no repeated-parse cost to
// amortize by pre-typing criteria into per-kind structs at catalog load.
type Rule struct {
	ID          string
	ProgramID   string
	Kind        valueobject.RuleKind
	RuleName    string
	Description string
	Criteria    map[string]any
	Weight      decimal.Decimal
	Mandatory   bool
	Active      bool
}
