package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// CatalogRepo implements port.CatalogRepository, loading every active
// lender with its active programs and rules eagerly attached in three
// queries (lenders, then programs, then rules) to avoid N+1 reads.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepo builds a CatalogRepo over pool.
func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// FindActiveLenders loads every active lender with its active programs
// (each carrying its active rules) attached.
func (r *CatalogRepo) FindActiveLenders(ctx context.Context) ([]model.Lender, error) {
	lenders, order, err := r.loadLenders(ctx)
	if err != nil {
		return nil, err
	}
	if len(lenders) == 0 {
		return nil, nil
	}

	programs, programOrder, err := r.loadPrograms(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := r.loadRules(ctx)
	if err != nil {
		return nil, err
	}

	rulesByProgram := make(map[string][]model.Rule)
	for _, rule := range rules {
		rulesByProgram[rule.ProgramID] = append(rulesByProgram[rule.ProgramID], rule)
	}

	programsByLender := make(map[string][]model.Program)
	for i, program := range programs {
		program.Rules = rulesByProgram[program.ID]
		program = model.NewProgram(program, programOrder[i])
		programsByLender[program.LenderID] = append(programsByLender[program.LenderID], program)
	}

	out := make([]model.Lender, 0, len(lenders))
	for _, id := range order {
		lender := lenders[id]
		lender.Programs = programsByLender[id]
		out = append(out, lender)
	}
	return out, nil
}

func (r *CatalogRepo) loadLenders(ctx context.Context) (map[string]model.Lender, []string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, active, min_loan_amount, max_loan_amount,
		       excluded_states, excluded_industries
		FROM lenders WHERE active = true ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("query lenders: %w", err)
	}
	defer rows.Close()

	lenders := make(map[string]model.Lender)
	var order []string
	for rows.Next() {
		var l model.Lender
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.Active, &l.MinLoanAmount, &l.MaxLoanAmount,
			&l.ExcludedStates, &l.ExcludedIndustries); err != nil {
			return nil, nil, fmt.Errorf("scan lender: %w", err)
		}
		lenders[l.ID] = l
		order = append(order, l.ID)
	}
	return lenders, order, rows.Err()
}

func (r *CatalogRepo) loadPrograms(ctx context.Context) ([]model.Program, []int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.lender_id, p.program_name, p.program_code, p.description, p.credit_tier,
		       p.eligibility_conditions, p.rate_metadata, p.min_fit_score
		FROM programs p
		JOIN lenders l ON l.id = p.lender_id
		WHERE p.active = true AND l.active = true
		ORDER BY p.created_at ASC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("query programs: %w", err)
	}
	defer rows.Close()

	var programs []model.Program
	var order []int
	seq := 0
	for rows.Next() {
		var (
			p               model.Program
			condJSON, rateJSON []byte
		)
		if err := rows.Scan(&p.ID, &p.LenderID, &p.ProgramName, &p.ProgramCode, &p.Description, &p.CreditTier,
			&condJSON, &rateJSON, &p.MinFitScore); err != nil {
			return nil, nil, fmt.Errorf("scan program: %w", err)
		}
		p.Active = true
		if err := unmarshalEligibilityConditions(condJSON, &p.EligibilityConditions); err != nil {
			return nil, nil, fmt.Errorf("unmarshal eligibility conditions for program %s: %w", p.ID, err)
		}
		if err := unmarshalRateMetadata(rateJSON, &p.RateMetadata); err != nil {
			return nil, nil, fmt.Errorf("unmarshal rate metadata for program %s: %w", p.ID, err)
		}
		programs = append(programs, p)
		order = append(order, seq)
		seq++
	}
	return programs, order, rows.Err()
}

func (r *CatalogRepo) loadRules(ctx context.Context) ([]model.Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.program_id, r.kind, r.rule_name, r.description, r.criteria, r.weight, r.mandatory
		FROM rules r
		JOIN programs p ON p.id = r.program_id
		JOIN lenders l ON l.id = p.lender_id
		WHERE r.active = true AND p.active = true AND l.active = true
		ORDER BY r.created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var rules []model.Rule
	for rows.Next() {
		var (
			rule         model.Rule
			kindStr      string
			criteriaJSON []byte
		)
		if err := rows.Scan(&rule.ID, &rule.ProgramID, &kindStr, &rule.RuleName, &rule.Description,
			&criteriaJSON, &rule.Weight, &rule.Mandatory); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		kind, err := valueobject.NewRuleKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("parse rule kind for rule %s: %w", rule.ID, err)
		}
		rule.Kind = kind
		rule.Active = true
		if len(criteriaJSON) > 0 {
			if err := json.Unmarshal(criteriaJSON, &rule.Criteria); err != nil {
				return nil, fmt.Errorf("unmarshal criteria for rule %s: %w", rule.ID, err)
			}
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

type eligibilityConditionsJSON struct {
	RequiresPayNet    *bool            `json:"requires_paynet"`
	LegalStructure    []string         `json:"legal_structure"`
	Industry          []string         `json:"industry"`
	MinRevenue        *decimal.Decimal `json:"min_revenue"`
	HomeownerRequired *bool            `json:"homeowner_required"`
	USCitizenRequired *bool            `json:"us_citizen_required"`
}

func unmarshalEligibilityConditions(raw []byte, dst *model.EligibilityConditions) error {
	if len(raw) == 0 {
		return nil
	}
	var parsed eligibilityConditionsJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	dst.RequiresPayNet = parsed.RequiresPayNet
	dst.LegalStructures = parsed.LegalStructure
	dst.Industries = parsed.Industry
	dst.MinRevenue = parsed.MinRevenue
	dst.HomeownerRequired = parsed.HomeownerRequired
	dst.USCitizenRequired = parsed.USCitizenRequired
	return nil
}

type baseRateRowJSON struct {
	MinAmount decimal.Decimal `json:"min_amount"`
	MaxAmount decimal.Decimal `json:"max_amount"`
	Rate      decimal.Decimal `json:"rate"`
	MinTerm   *int            `json:"min_term"`
	MaxTerm   *int            `json:"max_term"`
}

type adjustmentRowJSON struct {
	Condition   string          `json:"condition"`
	Delta       decimal.Decimal `json:"delta"`
	Description string          `json:"description"`
}

type rateMetadataJSON struct {
	BaseRates   []baseRateRowJSON   `json:"base_rates"`
	Adjustments []adjustmentRowJSON `json:"adjustments"`
}

func unmarshalRateMetadata(raw []byte, dst *model.RateMetadata) error {
	if len(raw) == 0 {
		return nil
	}
	var parsed rateMetadataJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	dst.BaseRates = make([]model.BaseRateRow, 0, len(parsed.BaseRates))
	for _, row := range parsed.BaseRates {
		dst.BaseRates = append(dst.BaseRates, model.BaseRateRow{
			MinAmount: row.MinAmount, MaxAmount: row.MaxAmount, Rate: row.Rate,
			MinTerm: row.MinTerm, MaxTerm: row.MaxTerm,
		})
	}
	dst.Adjustments = make([]model.AdjustmentRow, 0, len(parsed.Adjustments))
	for _, adj := range parsed.Adjustments {
		dst.Adjustments = append(dst.Adjustments, model.AdjustmentRow{
			Condition: adj.Condition, Delta: adj.Delta, Description: adj.Description,
		})
	}
	return nil
}
