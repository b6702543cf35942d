package ruleengine

import "github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"

// Registry maps a rule kind to the Evaluator that handles it. Using a
// registry rather than a switch on kind inside the engine lets evaluators
// be substituted in tests and new kinds registered without touching the
// engine itself.
type Registry struct {
	evaluators map[string]Evaluator
}

// NewDefaultRegistry builds the registry wired with every evaluator this
// repo ships. Kinds with no entry here (bankruptcy_history,
// homeowner_required, us_citizen_required, custom) are silently skipped by
// the engine rather than failing the program.
func NewDefaultRegistry() *Registry {
	r := &Registry{evaluators: make(map[string]Evaluator)}

	credit := CreditEvaluator{}
	r.Register(valueobject.RuleKindMinFICO, credit)
	r.Register(valueobject.RuleKindMinPayNet, credit)
	r.Register(valueobject.RuleKindCreditTier, credit)
	r.Register(valueobject.RuleKindMaxCreditUtilization, credit)

	business := BusinessEvaluator{}
	r.Register(valueobject.RuleKindTimeInBusiness, business)
	r.Register(valueobject.RuleKindMinRevenue, business)
	r.Register(valueobject.RuleKindLegalStructure, business)

	loan := LoanEvaluator{}
	r.Register(valueobject.RuleKindMinLoanAmount, loan)
	r.Register(valueobject.RuleKindMaxLoanAmount, loan)
	r.Register(valueobject.RuleKindMinLoanTerm, loan)
	r.Register(valueobject.RuleKindMaxLoanTerm, loan)
	r.Register(valueobject.RuleKindMinDownPayment, loan)
	r.Register(valueobject.RuleKindMaxLTV, loan)

	equipment := EquipmentEvaluator{}
	r.Register(valueobject.RuleKindEquipmentType, equipment)
	r.Register(valueobject.RuleKindEquipmentAge, equipment)
	r.Register(valueobject.RuleKindEquipmentCondition, equipment)

	geo := GeographicEvaluator{}
	r.Register(valueobject.RuleKindExcludedStates, geo)
	r.Register(valueobject.RuleKindExcludedIndustries, geo)
	r.Register(valueobject.RuleKindAllowedStates, geo)
	r.Register(valueobject.RuleKindAllowedIndustries, geo)

	return r
}

// Register binds a rule kind to an evaluator, overwriting any prior binding.
func (r *Registry) Register(kind valueobject.RuleKind, e Evaluator) {
	r.evaluators[kind.String()] = e
}

// Resolve returns the evaluator bound to kind, or (nil, false) if none is
// registered.
func (r *Registry) Resolve(kind valueobject.RuleKind) (Evaluator, bool) {
	e, ok := r.evaluators[kind.String()]
	return e, ok
}
