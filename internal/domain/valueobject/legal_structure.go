package valueobject

import "fmt"

// LegalStructure is the tagged-variant business entity type.
type LegalStructure struct {
	value string
}

const (
	legalStructureLLC             = "LLC"
	legalStructureCorporation     = "Corporation"
	legalStructureSCorp           = "S-Corp"
	legalStructureCCorp           = "C-Corp"
	legalStructurePartnership     = "Partnership"
	legalStructureSoleProp        = "Sole Proprietorship"
	legalStructureNonProfit       = "Non-Profit"
	legalStructureOther           = "Other"
)

var (
	LegalStructureLLC         = LegalStructure{value: legalStructureLLC}
	LegalStructureCorporation = LegalStructure{value: legalStructureCorporation}
	LegalStructureSCorp       = LegalStructure{value: legalStructureSCorp}
	LegalStructureCCorp       = LegalStructure{value: legalStructureCCorp}
	LegalStructurePartnership = LegalStructure{value: legalStructurePartnership}
	LegalStructureSoleProp    = LegalStructure{value: legalStructureSoleProp}
	LegalStructureNonProfit   = LegalStructure{value: legalStructureNonProfit}
	LegalStructureOther       = LegalStructure{value: legalStructureOther}
)

var validLegalStructures = map[string]LegalStructure{
	legalStructureLLC:         LegalStructureLLC,
	legalStructureCorporation: LegalStructureCorporation,
	legalStructureSCorp:       LegalStructureSCorp,
	legalStructureCCorp:       LegalStructureCCorp,
	legalStructurePartnership: LegalStructurePartnership,
	legalStructureSoleProp:    LegalStructureSoleProp,
	legalStructureNonProfit:   LegalStructureNonProfit,
	legalStructureOther:       LegalStructureOther,
}

// NewLegalStructure parses a raw string into a LegalStructure.
func NewLegalStructure(s string) (LegalStructure, error) {
	v, ok := validLegalStructures[s]
	if !ok {
		return LegalStructure{}, fmt.Errorf("invalid legal structure: %q", s)
	}
	return v, nil
}

func (s LegalStructure) String() string { return s.value }

func (s LegalStructure) IsZero() bool { return s.value == "" }

func (s LegalStructure) Equal(other LegalStructure) bool { return s.value == other.value }
