package valueobject

import "fmt"

// RuleKind is the tagged-variant policy rule type. Criteria shape and
// evaluation policy per kind are documented alongside the evaluator that
// handles it, in package ruleengine.
type RuleKind struct {
	value string
}

const (
	// Credit family.
	ruleKindMinFICO               = "min_fico"
	ruleKindMinPayNet             = "min_paynet"
	ruleKindCreditTier            = "credit_tier"
	ruleKindMaxCreditUtilization  = "max_credit_utilization"

	// Business family.
	ruleKindTimeInBusiness = "time_in_business"
	ruleKindMinRevenue     = "min_revenue"
	ruleKindLegalStructure = "legal_structure"

	// Loan family.
	ruleKindMinLoanAmount = "min_loan_amount"
	ruleKindMaxLoanAmount = "max_loan_amount"
	ruleKindMinLoanTerm   = "min_loan_term"
	ruleKindMaxLoanTerm   = "max_loan_term"
	ruleKindMinDownPayment = "min_down_payment"
	ruleKindMaxLTV        = "max_ltv"

	// Equipment family.
	ruleKindEquipmentType      = "equipment_type"
	ruleKindEquipmentAge       = "equipment_age"
	ruleKindEquipmentCondition = "equipment_condition"

	// Geographic/industry family.
	ruleKindExcludedStates     = "excluded_states"
	ruleKindExcludedIndustries = "excluded_industries"
	ruleKindAllowedStates      = "allowed_states"
	ruleKindAllowedIndustries  = "allowed_industries"

	// Guarantor/other family — valid kinds, but no evaluator is registered
	// for them: the rule engine skips them rather than failing the program.
	ruleKindBankruptcyHistory  = "bankruptcy_history"
	ruleKindHomeownerRequired  = "homeowner_required"
	ruleKindUSCitizenRequired  = "us_citizen_required"
	ruleKindCustom             = "custom"
)

var (
	RuleKindMinFICO              = RuleKind{value: ruleKindMinFICO}
	RuleKindMinPayNet            = RuleKind{value: ruleKindMinPayNet}
	RuleKindCreditTier           = RuleKind{value: ruleKindCreditTier}
	RuleKindMaxCreditUtilization = RuleKind{value: ruleKindMaxCreditUtilization}

	RuleKindTimeInBusiness = RuleKind{value: ruleKindTimeInBusiness}
	RuleKindMinRevenue     = RuleKind{value: ruleKindMinRevenue}
	RuleKindLegalStructure = RuleKind{value: ruleKindLegalStructure}

	RuleKindMinLoanAmount  = RuleKind{value: ruleKindMinLoanAmount}
	RuleKindMaxLoanAmount  = RuleKind{value: ruleKindMaxLoanAmount}
	RuleKindMinLoanTerm    = RuleKind{value: ruleKindMinLoanTerm}
	RuleKindMaxLoanTerm    = RuleKind{value: ruleKindMaxLoanTerm}
	RuleKindMinDownPayment = RuleKind{value: ruleKindMinDownPayment}
	RuleKindMaxLTV         = RuleKind{value: ruleKindMaxLTV}

	RuleKindEquipmentType      = RuleKind{value: ruleKindEquipmentType}
	RuleKindEquipmentAge       = RuleKind{value: ruleKindEquipmentAge}
	RuleKindEquipmentCondition = RuleKind{value: ruleKindEquipmentCondition}

	RuleKindExcludedStates     = RuleKind{value: ruleKindExcludedStates}
	RuleKindExcludedIndustries = RuleKind{value: ruleKindExcludedIndustries}
	RuleKindAllowedStates      = RuleKind{value: ruleKindAllowedStates}
	RuleKindAllowedIndustries  = RuleKind{value: ruleKindAllowedIndustries}

	RuleKindBankruptcyHistory = RuleKind{value: ruleKindBankruptcyHistory}
	RuleKindHomeownerRequired = RuleKind{value: ruleKindHomeownerRequired}
	RuleKindUSCitizenRequired = RuleKind{value: ruleKindUSCitizenRequired}
	RuleKindCustom            = RuleKind{value: ruleKindCustom}
)

var validRuleKinds = map[string]RuleKind{
	ruleKindMinFICO:              RuleKindMinFICO,
	ruleKindMinPayNet:            RuleKindMinPayNet,
	ruleKindCreditTier:           RuleKindCreditTier,
	ruleKindMaxCreditUtilization: RuleKindMaxCreditUtilization,

	ruleKindTimeInBusiness: RuleKindTimeInBusiness,
	ruleKindMinRevenue:     RuleKindMinRevenue,
	ruleKindLegalStructure: RuleKindLegalStructure,

	ruleKindMinLoanAmount:  RuleKindMinLoanAmount,
	ruleKindMaxLoanAmount:  RuleKindMaxLoanAmount,
	ruleKindMinLoanTerm:    RuleKindMinLoanTerm,
	ruleKindMaxLoanTerm:    RuleKindMaxLoanTerm,
	ruleKindMinDownPayment: RuleKindMinDownPayment,
	ruleKindMaxLTV:         RuleKindMaxLTV,

	ruleKindEquipmentType:      RuleKindEquipmentType,
	ruleKindEquipmentAge:       RuleKindEquipmentAge,
	ruleKindEquipmentCondition: RuleKindEquipmentCondition,

	ruleKindExcludedStates:     RuleKindExcludedStates,
	ruleKindExcludedIndustries: RuleKindExcludedIndustries,
	ruleKindAllowedStates:      RuleKindAllowedStates,
	ruleKindAllowedIndustries:  RuleKindAllowedIndustries,

	ruleKindBankruptcyHistory: RuleKindBankruptcyHistory,
	ruleKindHomeownerRequired: RuleKindHomeownerRequired,
	ruleKindUSCitizenRequired: RuleKindUSCitizenRequired,
	ruleKindCustom:            RuleKindCustom,
}

// NewRuleKind parses a raw string into a RuleKind.
func NewRuleKind(s string) (RuleKind, error) {
	v, ok := validRuleKinds[s]
	if !ok {
		return RuleKind{}, fmt.Errorf("invalid rule kind: %q", s)
	}
	return v, nil
}

func (k RuleKind) String() string { return k.value }

func (k RuleKind) IsZero() bool { return k.value == "" }

func (k RuleKind) Equal(other RuleKind) bool { return k.value == other.value }
