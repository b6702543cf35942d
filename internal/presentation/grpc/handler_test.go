package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/valueobject"
)

func TestToRunResponse(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	run := model.ReconstructRun(
		"run-1", "app-1", mustRunStatus(t, "Completed"), &now, &now,
		4, 6, 2, 2, "",
		map[string]any{"rerun": false}, 2, now, now,
	)
	resp := toRunResponse(run)
	assert.Equal(t, "run-1", resp.ID)
	assert.Equal(t, "Completed", resp.Status)
	assert.Equal(t, 4, resp.TotalLendersEvaluated)
	assert.Equal(t, "2026-01-01T12:00:00Z", resp.StartedAt)
	assert.Equal(t, "2026-01-01T12:00:00Z", resp.CompletedAt)
}

func TestToMatchResultResponses(t *testing.T) {
	rate := decimal.NewFromFloat(7.25)
	results := []model.MatchResult{
		{
			ID: "match-1", LenderID: "lender-1", IsEligible: true,
			FitScore: decimal.NewFromInt(92), EstimatedRate: &rate, CreditTier: "Prime",
		},
		{
			ID: "match-2", LenderID: "lender-2", IsEligible: false,
			FitScore: decimal.Zero,
		},
	}
	out := toMatchResultResponses(results)
	require.Len(t, out, 2)
	assert.Equal(t, "92.00", out[0].FitScore)
	require.NotNil(t, out[0].EstimatedRate)
	assert.Equal(t, "7.25", *out[0].EstimatedRate)
	assert.Nil(t, out[1].EstimatedRate)
}

func TestRunUnderwritingRequiresApplicationID(t *testing.T) {
	handler := NewUnderwritingHandler(nil)
	_, err := handler.RunUnderwriting(context.Background(), &RunUnderwritingRequest{})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}

func TestRerunUnderwritingRequiresApplicationID(t *testing.T) {
	handler := NewUnderwritingHandler(nil)
	_, err := handler.RerunUnderwriting(context.Background(), &RerunUnderwritingRequest{})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}

func mustRunStatus(t *testing.T, s string) valueobject.RunStatus {
	t.Helper()
	status, err := valueobject.NewRunStatus(s)
	require.NoError(t, err)
	return status
}
