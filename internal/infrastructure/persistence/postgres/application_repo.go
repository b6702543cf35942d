package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

// ApplicationRepo implements port.ApplicationRepository, loading the
// application with its business, guarantor, and equipment eagerly joined.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo builds an ApplicationRepo over pool.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

const applicationJoinQuery = `
	SELECT
		a.id, a.application_number, a.status, a.requested_amount, a.requested_term_months,
		a.down_payment_percentage, a.down_payment_amount, a.comparable_debt_payments,
		a.purpose, a.submitted_at,
		b.id, b.legal_name, b.dba_name, b.legal_structure, b.industry, b.established_date,
		b.annual_revenue, b.state, b.city, b.zip, b.address_line, b.phone, b.email,
		g.id, g.first_name, g.last_name, g.fico_score, g.paynet_score,
		g.credit_utilization_percentage, g.revolving_credit_available,
		g.bankruptcy_history, g.bankruptcy_discharge_date, g.is_homeowner, g.is_us_citizen,
		g.phone, g.email, g.address_line,
		e.id, e.equipment_type, e.description, e.manufacturer, e.model, e.serial_number,
		e.condition, e.cost, e.year_manufactured
	FROM loan_applications a
	JOIN businesses b ON b.id = a.business_id
	JOIN guarantors g ON g.id = a.guarantor_id
	JOIN equipment e ON e.id = a.equipment_id
`

// FindByID loads one application by id.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.Application, error) {
	row := r.pool.QueryRow(ctx, applicationJoinQuery+" WHERE a.id = $1", id)
	return scanApplication(row)
}

// UpdateStatus transitions an application's status field directly (used
// by the underwriting orchestrator to promote Submitted -> In Underwriting).
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE loan_applications SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s not found", id)
	}
	return nil
}

func scanApplication(s scannableRow) (model.Application, error) {
	var (
		a                    model.Application
		statusStr            string
		legalStructureStr    string
		conditionStr         string
		submittedAt          *time.Time
		establishedDate      time.Time
		discharageDate       *time.Time
		annualRevenue        *decimal.Decimal
		creditUtilization    *decimal.Decimal
		revolvingCredit      *decimal.Decimal
		fico                 *int
		paynet               *int
		yearManufactured     *int
		downPaymentPct       *decimal.Decimal
		downPaymentAmt       *decimal.Decimal
		comparableDebt       *decimal.Decimal
	)

	if err := s.Scan(
		&a.ID, &a.ApplicationNumber, &statusStr, &a.RequestedAmount, &a.RequestedTermMonths,
		&downPaymentPct, &downPaymentAmt, &comparableDebt, &a.Purpose, &submittedAt,
		&a.Business.ID, &a.Business.LegalName, &a.Business.DBAName, &legalStructureStr, &a.Business.Industry,
		&establishedDate, &annualRevenue, &a.Business.State, &a.Business.City, &a.Business.Zip,
		&a.Business.AddressLine, &a.Business.Phone, &a.Business.Email,
		&a.Guarantor.ID, &a.Guarantor.FirstName, &a.Guarantor.LastName, &fico, &paynet,
		&creditUtilization, &revolvingCredit, &a.Guarantor.BankruptcyHistory, &discharageDate,
		&a.Guarantor.IsHomeowner, &a.Guarantor.IsUSCitizen, &a.Guarantor.Phone, &a.Guarantor.Email,
		&a.Guarantor.AddressLine,
		&a.Equipment.ID, &a.Equipment.EquipmentType, &a.Equipment.Description, &a.Equipment.Manufacturer,
		&a.Equipment.Model, &a.Equipment.SerialNumber, &conditionStr, &a.Equipment.Cost, &yearManufactured,
	); err != nil {
		return model.Application{}, fmt.Errorf("scan application: %w", err)
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.Application{}, fmt.Errorf("parse application status: %w", err)
	}
	legalStructure, err := valueobject.NewLegalStructure(legalStructureStr)
	if err != nil {
		return model.Application{}, fmt.Errorf("parse legal structure: %w", err)
	}
	condition, err := valueobject.NewCondition(conditionStr)
	if err != nil {
		return model.Application{}, fmt.Errorf("parse equipment condition: %w", err)
	}

	a.Status = status
	a.DownPaymentPercentage = downPaymentPct
	a.DownPaymentAmount = downPaymentAmt
	a.ComparableDebtPayments = comparableDebt
	a.SubmittedAt = submittedAt
	a.Business.LegalStructure = legalStructure
	a.Business.EstablishedDate = establishedDate
	a.Business.AnnualRevenue = annualRevenue
	a.Guarantor.FICOScore = fico
	a.Guarantor.PayNetScore = paynet
	a.Guarantor.CreditUtilizationPercentage = creditUtilization
	a.Guarantor.RevolvingCreditAvailable = revolvingCredit
	a.Guarantor.BankruptcyDischargeDate = discharageDate
	a.Equipment.Condition = condition
	a.Equipment.YearManufactured = yearManufactured

	return a, nil
}
