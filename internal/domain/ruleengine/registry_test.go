package ruleengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

func TestNewDefaultRegistryResolvesEveryWiredKind(t *testing.T) {
	registry := NewDefaultRegistry()
	wired := []valueobject.RuleKind{
		valueobject.RuleKindMinFICO, valueobject.RuleKindMinPayNet,
		valueobject.RuleKindCreditTier, valueobject.RuleKindMaxCreditUtilization,
		valueobject.RuleKindTimeInBusiness, valueobject.RuleKindMinRevenue, valueobject.RuleKindLegalStructure,
		valueobject.RuleKindMinLoanAmount, valueobject.RuleKindMaxLoanAmount,
		valueobject.RuleKindMinLoanTerm, valueobject.RuleKindMaxLoanTerm,
		valueobject.RuleKindMinDownPayment, valueobject.RuleKindMaxLTV,
		valueobject.RuleKindEquipmentType, valueobject.RuleKindEquipmentAge, valueobject.RuleKindEquipmentCondition,
		valueobject.RuleKindExcludedStates, valueobject.RuleKindExcludedIndustries,
		valueobject.RuleKindAllowedStates, valueobject.RuleKindAllowedIndustries,
	}
	for _, kind := range wired {
		_, ok := registry.Resolve(kind)
		assert.True(t, ok, kind.String())
	}
}

func TestRegistrySkipsUnwiredGuarantorKinds(t *testing.T) {
	registry := NewDefaultRegistry()
	unwired := []valueobject.RuleKind{
		valueobject.RuleKindBankruptcyHistory,
		valueobject.RuleKindHomeownerRequired,
		valueobject.RuleKindUSCitizenRequired,
		valueobject.RuleKindCustom,
	}
	for _, kind := range unwired {
		_, ok := registry.Resolve(kind)
		assert.False(t, ok, kind.String())
	}
}

func TestRegistryRegisterOverwritesPriorBinding(t *testing.T) {
	registry := NewDefaultRegistry()
	custom := CreditEvaluator{}
	registry.Register(valueobject.RuleKindCustom, custom)

	e, ok := registry.Resolve(valueobject.RuleKindCustom)
	assert.True(t, ok)
	assert.Equal(t, custom, e)
}
