package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/application/usecase"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
)

// UnderwritingHandler is the gRPC handler for underwriting operations.
type UnderwritingHandler struct {
	UnimplementedUnderwritingServiceServer
	orchestrator *usecase.UnderwritingOrchestrator
}

// NewUnderwritingHandler creates a new handler over orchestrator.
func NewUnderwritingHandler(orchestrator *usecase.UnderwritingOrchestrator) *UnderwritingHandler {
	return &UnderwritingHandler{orchestrator: orchestrator}
}

// RunUnderwriting starts a fresh matcher run for an application.
func (h *UnderwritingHandler) RunUnderwriting(ctx context.Context, req *RunUnderwritingRequest) (*RunResponse, error) {
	if req.ApplicationID == "" {
		return nil, status.Error(codes.InvalidArgument, "application_id is required")
	}
	run, err := h.orchestrator.RunUnderwriting(ctx, req.ApplicationID, req.Metadata)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "run underwriting: %v", err)
	}
	resp := toRunResponse(run)
	return &resp, nil
}

// RerunUnderwriting starts a new matcher run tagged as a rerun.
func (h *UnderwritingHandler) RerunUnderwriting(ctx context.Context, req *RerunUnderwritingRequest) (*RunResponse, error) {
	if req.ApplicationID == "" {
		return nil, status.Error(codes.InvalidArgument, "application_id is required")
	}
	run, err := h.orchestrator.RerunUnderwriting(ctx, req.ApplicationID, req.Reason)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "rerun underwriting: %v", err)
	}
	resp := toRunResponse(run)
	return &resp, nil
}

// GetRun fetches a run by id.
func (h *UnderwritingHandler) GetRun(ctx context.Context, req *GetRunRequest) (*RunResponse, error) {
	run, err := h.orchestrator.GetRun(ctx, req.RunID)
	if err != nil {
		return nil, status.Errorf(codes.NotFound, "get run: %v", err)
	}
	resp := toRunResponse(run)
	return &resp, nil
}

// GetLatestRun fetches the most recent run for an application.
func (h *UnderwritingHandler) GetLatestRun(ctx context.Context, req *GetLatestRunRequest) (*RunResponse, error) {
	run, err := h.orchestrator.GetLatestForApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, status.Errorf(codes.NotFound, "get latest run: %v", err)
	}
	resp := toRunResponse(run)
	return &resp, nil
}

// GetMatchedLenders returns the eligible match results of a run.
func (h *UnderwritingHandler) GetMatchedLenders(ctx context.Context, req *GetMatchedLendersRequest) (*MatchResultListResponse, error) {
	results, err := h.orchestrator.GetMatched(ctx, req.RunID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get matched lenders: %v", err)
	}
	return &MatchResultListResponse{Results: toMatchResultResponses(results)}, nil
}

// GetRejectedLenders returns the rejected match results of a run.
func (h *UnderwritingHandler) GetRejectedLenders(ctx context.Context, req *GetRejectedLendersRequest) (*MatchResultListResponse, error) {
	results, err := h.orchestrator.GetRejected(ctx, req.RunID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get rejected lenders: %v", err)
	}
	return &MatchResultListResponse{Results: toMatchResultResponses(results)}, nil
}

// GetRuleEvaluations returns the rule evaluations behind one match result.
func (h *UnderwritingHandler) GetRuleEvaluations(ctx context.Context, req *GetRuleEvaluationsRequest) (*RuleEvaluationListResponse, error) {
	evaluations, err := h.orchestrator.GetEvaluationsForMatch(ctx, req.MatchResultID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get rule evaluations: %v", err)
	}
	out := make([]RuleEvaluationResponse, 0, len(evaluations))
	for _, e := range evaluations {
		out = append(out, RuleEvaluationResponse{
			ID:        e.ID,
			RuleID:    e.RuleID,
			RuleName:  e.RuleName,
			RuleType:  e.RuleType,
			Passed:    e.Passed,
			Score:     e.Score.StringFixed(2),
			Weight:    e.Weight.StringFixed(2),
			Mandatory: e.Mandatory,
			Reason:    e.Reason,
			Evidence:  e.Evidence,
		})
	}
	return &RuleEvaluationListResponse{Evaluations: out}, nil
}

func toRunResponse(run model.Run) RunResponse {
	resp := RunResponse{
		ID:                     run.ID(),
		ApplicationID:          run.ApplicationID(),
		Status:                 run.Status().String(),
		TotalLendersEvaluated:  run.TotalLendersEvaluated(),
		TotalProgramsEvaluated: run.TotalProgramsEvaluated(),
		MatchedCount:           run.MatchedCount(),
		RejectedCount:          run.RejectedCount(),
		ErrorMessage:           run.ErrorMessage(),
		Metadata:               run.Metadata(),
	}
	if started := run.StartedAt(); started != nil {
		resp.StartedAt = started.Format(timeFormat)
	}
	if completed := run.CompletedAt(); completed != nil {
		resp.CompletedAt = completed.Format(timeFormat)
	}
	return resp
}

func toMatchResultResponses(results []model.MatchResult) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(results))
	for _, r := range results {
		item := MatchResultResponse{
			ID:                   r.ID,
			LenderID:             r.LenderID,
			ProgramID:            r.ProgramID,
			IsEligible:           r.IsEligible,
			FitScore:             r.FitScore.StringFixed(2),
			RejectionReason:      r.RejectionReason,
			RejectionTier:        r.RejectionTier,
			CreditTier:           r.CreditTier,
			TotalRulesEvaluated:  r.TotalRulesEvaluated,
			RulesPassed:          r.RulesPassed,
			RulesFailed:          r.RulesFailed,
			MandatoryRulesPassed: r.MandatoryRulesPassed,
		}
		if r.EstimatedRate != nil {
			v := r.EstimatedRate.StringFixed(2)
			item.EstimatedRate = &v
		}
		if r.EstimatedMonthlyPayment != nil {
			v := r.EstimatedMonthlyPayment.StringFixed(2)
			item.EstimatedMonthlyPayment = &v
		}
		if r.ApprovalProbability != nil {
			v := r.ApprovalProbability.StringFixed(2)
			item.ApprovalProbability = &v
		}
		out = append(out, item)
	}
	return out
}

const timeFormat = "2006-01-02T15:04:05Z07:00"
