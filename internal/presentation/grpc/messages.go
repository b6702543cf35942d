package grpc

// messages.go holds the plain request/response structs a generated proto
// package would normally provide, serialized over the JSON codec
// registered in json_codec.go.

type RunUnderwritingRequest struct {
	ApplicationID string         `json:"application_id"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type RerunUnderwritingRequest struct {
	ApplicationID string `json:"application_id"`
	Reason        string `json:"reason"`
}

type GetRunRequest struct {
	RunID string `json:"run_id"`
}

type GetLatestRunRequest struct {
	ApplicationID string `json:"application_id"`
}

type GetMatchedLendersRequest struct {
	RunID string `json:"run_id"`
}

type GetRejectedLendersRequest struct {
	RunID string `json:"run_id"`
}

type GetRuleEvaluationsRequest struct {
	MatchResultID string `json:"match_result_id"`
}

type RunResponse struct {
	ID                     string         `json:"id"`
	ApplicationID          string         `json:"application_id"`
	Status                 string         `json:"status"`
	StartedAt              string         `json:"started_at,omitempty"`
	CompletedAt            string         `json:"completed_at,omitempty"`
	TotalLendersEvaluated  int            `json:"total_lenders_evaluated"`
	TotalProgramsEvaluated int            `json:"total_programs_evaluated"`
	MatchedCount           int            `json:"matched_count"`
	RejectedCount          int            `json:"rejected_count"`
	ErrorMessage           string         `json:"error_message,omitempty"`
	Metadata               map[string]any `json:"metadata,omitempty"`
}

type MatchResultResponse struct {
	ID                      string  `json:"id"`
	LenderID                string  `json:"lender_id"`
	ProgramID               *string `json:"program_id,omitempty"`
	IsEligible              bool    `json:"is_eligible"`
	FitScore                string  `json:"fit_score"`
	RejectionReason         *string `json:"rejection_reason,omitempty"`
	RejectionTier           *int    `json:"rejection_tier,omitempty"`
	EstimatedRate           *string `json:"estimated_rate,omitempty"`
	EstimatedMonthlyPayment *string `json:"estimated_monthly_payment,omitempty"`
	ApprovalProbability     *string `json:"approval_probability,omitempty"`
	CreditTier              string  `json:"credit_tier,omitempty"`
	TotalRulesEvaluated     int     `json:"total_rules_evaluated"`
	RulesPassed             int     `json:"rules_passed"`
	RulesFailed             int     `json:"rules_failed"`
	MandatoryRulesPassed    bool    `json:"mandatory_rules_passed"`
}

type MatchResultListResponse struct {
	Results []MatchResultResponse `json:"results"`
}

type RuleEvaluationResponse struct {
	ID        string         `json:"id"`
	RuleID    *string        `json:"rule_id,omitempty"`
	RuleName  string         `json:"rule_name"`
	RuleType  string         `json:"rule_type"`
	Passed    bool           `json:"passed"`
	Score     string         `json:"score"`
	Weight    string         `json:"weight"`
	Mandatory bool           `json:"mandatory"`
	Reason    string         `json:"reason"`
	Evidence  map[string]any `json:"evidence,omitempty"`
}

type RuleEvaluationListResponse struct {
	Evaluations []RuleEvaluationResponse `json:"evaluations"`
}
