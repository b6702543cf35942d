package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/port"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
	pkgpostgres "github.com/bibbank/bib/pkg/postgres"
)

// RunRepo implements port.RunRepository over a pgxpool connection pool (or,
// when scoped by WithTransaction, over a single pgx.Tx), using a version
// column for optimistic locking on the run row.
type RunRepo struct {
	db   pkgpostgres.Querier
	pool *pgxpool.Pool // nil when db is already transaction-scoped.
}

// NewRunRepo builds a RunRepo over pool.
func NewRunRepo(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{db: pool, pool: pool}
}

// WithTransaction begins a Postgres transaction and runs fn against a
// RunRepo scoped to it, committing on success and rolling back on error —
// this is how the orchestrator persists a run's match results and rule
// evaluations as one atomic unit (spec: "match results and rule evaluations
// are created together in one transaction per execution").
func (r *RunRepo) WithTransaction(ctx context.Context, fn func(tx port.RunRepository) error) error {
	if r.pool == nil {
		return errors.New("postgres: WithTransaction called on a transaction-scoped RunRepo")
	}
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&RunRepo{db: tx})
	})
}

// CreateRun inserts a brand-new Pending run and returns it with its
// assigned identifier.
func (r *RunRepo) CreateRun(ctx context.Context, applicationID string, meta map[string]any) (model.Run, error) {
	now := time.Now().UTC()
	run := model.NewRun(applicationID, meta, now)

	metaJSON, err := json.Marshal(run.Metadata())
	if err != nil {
		return model.Run{}, fmt.Errorf("marshal run metadata: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO underwriting_runs (
			id, application_id, status, metadata, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, run.ID(), run.ApplicationID(), run.Status().String(), metaJSON, run.Version(), run.CreatedAt(), run.UpdatedAt())
	if err != nil {
		return model.Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// SaveRun updates an existing run by id, enforcing optimistic locking via the
// version column: a conflicting concurrent write loses the race.
func (r *RunRepo) SaveRun(ctx context.Context, run model.Run) error {
	metaJSON, err := json.Marshal(run.Metadata())
	if err != nil {
		return fmt.Errorf("marshal run metadata: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE underwriting_runs SET
			status = $1, started_at = $2, completed_at = $3,
			total_lenders_evaluated = $4, total_programs_evaluated = $5,
			matched_count = $6, rejected_count = $7, error_message = $8,
			metadata = $9, version = $10, updated_at = $11
		WHERE id = $12 AND version = $10 - 1
	`,
		run.Status().String(), run.StartedAt(), run.CompletedAt(),
		run.TotalLendersEvaluated(), run.TotalProgramsEvaluated(),
		run.MatchedCount(), run.RejectedCount(), nullString(run.ErrorMessage()),
		metaJSON, run.Version(), run.UpdatedAt(), run.ID(),
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on underwriting run")
	}
	return nil
}

// GetRun loads a run by id.
func (r *RunRepo) GetRun(ctx context.Context, runID string) (model.Run, error) {
	row := r.db.QueryRow(ctx, runSelectColumns+" FROM underwriting_runs WHERE id = $1", runID)
	return scanRun(row)
}

// GetLatestForApplication loads the most recently created run for an
// application.
func (r *RunRepo) GetLatestForApplication(ctx context.Context, applicationID string) (model.Run, error) {
	row := r.db.QueryRow(ctx,
		runSelectColumns+" FROM underwriting_runs WHERE application_id = $1 ORDER BY created_at DESC LIMIT 1",
		applicationID)
	return scanRun(row)
}

// BatchInsertMatchResults inserts every match result in a single batch,
// preserving input order in the returned slice.
func (r *RunRepo) BatchInsertMatchResults(ctx context.Context, runID string, results []model.MatchResult) ([]model.MatchResult, error) {
	if len(results) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	saved := make([]model.MatchResult, len(results))
	for i, result := range results {
		id := uuid.New().String()
		batch.Queue(`
			INSERT INTO match_results (
				id, run_id, lender_id, program_id, is_eligible, fit_score,
				rejection_reason, rejection_tier, estimated_rate,
				estimated_monthly_payment, approval_probability, credit_tier,
				total_rules_evaluated, rules_passed, rules_failed, mandatory_rules_passed
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		`, id, runID, result.LenderID, result.ProgramID, result.IsEligible, result.FitScore,
			result.RejectionReason, result.RejectionTier, result.EstimatedRate,
			result.EstimatedMonthlyPayment, result.ApprovalProbability, result.CreditTier,
			result.TotalRulesEvaluated, result.RulesPassed, result.RulesFailed, result.MandatoryRulesPassed)
		result.ID = id
		saved[i] = result
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := range results {
		if _, err := br.Exec(); err != nil {
			return nil, fmt.Errorf("insert match result %d: %w", i, err)
		}
	}
	return saved, nil
}

// BatchInsertRuleEvaluations inserts every rule evaluation for one match
// result, preserving evaluation order.
func (r *RunRepo) BatchInsertRuleEvaluations(ctx context.Context, matchResultID string, evaluations []model.RuleEvaluation) ([]model.RuleEvaluation, error) {
	if len(evaluations) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, eval := range evaluations {
		id := uuid.New().String()
		evidenceJSON, err := json.Marshal(eval.Evidence)
		if err != nil {
			return nil, fmt.Errorf("marshal evidence: %w", err)
		}
		batch.Queue(`
			INSERT INTO rule_evaluations (
				id, match_result_id, rule_id, rule_name, rule_type,
				passed, score, weight, mandatory, reason, evidence
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, id, matchResultID, eval.RuleID, eval.RuleName, eval.RuleType,
			eval.Passed, eval.Score, eval.Weight, eval.Mandatory, eval.Reason, evidenceJSON)
		eval.ID = id
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	saved := make([]model.RuleEvaluation, len(evaluations))
	for i, eval := range evaluations {
		if _, err := br.Exec(); err != nil {
			return nil, fmt.Errorf("insert rule evaluation %d: %w", i, err)
		}
		saved[i] = eval
	}
	return saved, nil
}

// GetRunWithResults loads a run plus every match result (with its rule
// evaluations eagerly attached).
func (r *RunRepo) GetRunWithResults(ctx context.Context, runID string) (model.Run, []model.MatchResult, error) {
	run, err := r.GetRun(ctx, runID)
	if err != nil {
		return model.Run{}, nil, err
	}

	matched, err := r.GetMatched(ctx, runID)
	if err != nil {
		return model.Run{}, nil, err
	}
	rejected, err := r.GetRejected(ctx, runID)
	if err != nil {
		return model.Run{}, nil, err
	}
	results := append(matched, rejected...)

	for i, result := range results {
		evals, err := r.GetEvaluationsForMatch(ctx, result.ID)
		if err != nil {
			return model.Run{}, nil, err
		}
		results[i].RuleEvaluations = evals
	}
	return run, results, nil
}

// GetMatched returns eligible match results ordered by fit score descending.
func (r *RunRepo) GetMatched(ctx context.Context, runID string) ([]model.MatchResult, error) {
	rows, err := r.db.Query(ctx, matchResultSelectColumns+`
		FROM match_results WHERE run_id = $1 AND is_eligible = true ORDER BY fit_score DESC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query matched results: %w", err)
	}
	defer rows.Close()
	return scanMatchResults(rows)
}

// GetRejected returns rejected match results ordered by
// (rejection_tier ascending, created_at ascending).
func (r *RunRepo) GetRejected(ctx context.Context, runID string) ([]model.MatchResult, error) {
	rows, err := r.db.Query(ctx, matchResultSelectColumns+`
		FROM match_results WHERE run_id = $1 AND is_eligible = false
		ORDER BY rejection_tier ASC, created_at ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query rejected results: %w", err)
	}
	defer rows.Close()
	return scanMatchResults(rows)
}

// GetEvaluationsForMatch returns the rule evaluations for one match
// result, in evaluation (insertion) order.
func (r *RunRepo) GetEvaluationsForMatch(ctx context.Context, matchResultID string) ([]model.RuleEvaluation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, match_result_id, rule_id, rule_name, rule_type, passed, score, weight, mandatory, reason, evidence
		FROM rule_evaluations WHERE match_result_id = $1 ORDER BY created_at ASC
	`, matchResultID)
	if err != nil {
		return nil, fmt.Errorf("query rule evaluations: %w", err)
	}
	defer rows.Close()

	var out []model.RuleEvaluation
	for rows.Next() {
		var (
			e            model.RuleEvaluation
			evidenceJSON []byte
		)
		if err := rows.Scan(&e.ID, &e.MatchResultID, &e.RuleID, &e.RuleName, &e.RuleType,
			&e.Passed, &e.Score, &e.Weight, &e.Mandatory, &e.Reason, &evidenceJSON); err != nil {
			return nil, fmt.Errorf("scan rule evaluation: %w", err)
		}
		if len(evidenceJSON) > 0 {
			if err := json.Unmarshal(evidenceJSON, &e.Evidence); err != nil {
				return nil, fmt.Errorf("unmarshal evidence: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const runSelectColumns = `
	SELECT id, application_id, status, started_at, completed_at,
	       total_lenders_evaluated, total_programs_evaluated,
	       matched_count, rejected_count, error_message, metadata,
	       version, created_at, updated_at
`

const matchResultSelectColumns = `
	SELECT id, run_id, lender_id, program_id, is_eligible, fit_score,
	       rejection_reason, rejection_tier, estimated_rate,
	       estimated_monthly_payment, approval_probability, credit_tier,
	       total_rules_evaluated, rules_passed, rules_failed, mandatory_rules_passed
`

type scannableRow interface {
	Scan(dest ...any) error
}

func scanRun(s scannableRow) (model.Run, error) {
	var (
		id, applicationID, statusStr, errorMessage string
		startedAt, completedAt                     *time.Time
		totalLenders, totalPrograms, matched, rejected, version int
		metadataJSON                                []byte
		createdAt, updatedAt                        time.Time
	)
	if err := s.Scan(&id, &applicationID, &statusStr, &startedAt, &completedAt,
		&totalLenders, &totalPrograms, &matched, &rejected, &errorMessage,
		&metadataJSON, &version, &createdAt, &updatedAt); err != nil {
		return model.Run{}, fmt.Errorf("scan run: %w", err)
	}

	status, err := valueobject.NewRunStatus(statusStr)
	if err != nil {
		return model.Run{}, fmt.Errorf("parse run status: %w", err)
	}

	var metadata map[string]any
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
			return model.Run{}, fmt.Errorf("unmarshal run metadata: %w", err)
		}
	}

	return model.ReconstructRun(
		id, applicationID, status, startedAt, completedAt,
		totalLenders, totalPrograms, matched, rejected, errorMessage,
		metadata, version, createdAt, updatedAt,
	), nil
}

type rowsLike interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanMatchResults(rows rowsLike) ([]model.MatchResult, error) {
	var out []model.MatchResult
	for rows.Next() {
		var m model.MatchResult
		var estimatedRate, estimatedPayment, approvalProbability *decimal.Decimal
		if err := rows.Scan(&m.ID, &m.RunID, &m.LenderID, &m.ProgramID, &m.IsEligible, &m.FitScore,
			&m.RejectionReason, &m.RejectionTier, &estimatedRate, &estimatedPayment, &approvalProbability,
			&m.CreditTier, &m.TotalRulesEvaluated, &m.RulesPassed, &m.RulesFailed, &m.MandatoryRulesPassed); err != nil {
			return nil, fmt.Errorf("scan match result: %w", err)
		}
		m.EstimatedRate = estimatedRate
		m.EstimatedMonthlyPayment = estimatedPayment
		m.ApprovalProbability = approvalProbability
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
