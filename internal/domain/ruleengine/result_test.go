package ruleengine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateScorePassed(t *testing.T) {
	score := calculateScore(true, decimal.NewFromFloat(0.5), decimal.Zero)
	assert.True(t, score.Equal(decimal.NewFromInt(50)))
}

func TestCalculateScoreHardFail(t *testing.T) {
	score := calculateScore(false, decimal.NewFromInt(1), decimal.Zero)
	assert.True(t, score.IsZero())
}

func TestCalculateScorePartialCredit(t *testing.T) {
	score := calculateScore(false, decimal.NewFromInt(1), decimal.NewFromFloat(0.4))
	assert.True(t, score.Equal(decimal.NewFromInt(40)))
}

func TestPartialCreditBandWithinRange(t *testing.T) {
	credit := partialCreditBand(decimal.NewFromInt(25), decimal.NewFromInt(50))
	assert.True(t, credit.Equal(decimal.NewFromFloat(0.5)))
}

func TestPartialCreditBandBeyondRangeClampsZero(t *testing.T) {
	credit := partialCreditBand(decimal.NewFromInt(100), decimal.NewFromInt(50))
	assert.True(t, credit.IsZero())
}

func TestPartialCreditBandZeroWidth(t *testing.T) {
	credit := partialCreditBand(decimal.NewFromInt(10), decimal.Zero)
	assert.True(t, credit.IsZero())
}

func TestBadCriteria(t *testing.T) {
	result := badCriteria("min_fico", decimal.NewFromInt(1), true, errors.New("missing required criteria key \"min_score\""))
	assert.False(t, result.Passed)
	assert.True(t, result.Mandatory)
	assert.Contains(t, result.Reason, "bad rule criteria for min_fico")
	assert.Contains(t, result.Reason, "min_score")
}
