package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationStatusValid(t *testing.T) {
	s, err := NewApplicationStatus("Under Review")
	require.NoError(t, err)
	assert.Equal(t, "Under Review", s.String())
	assert.True(t, s.Equal(ApplicationStatusUnderReview))
}

func TestNewApplicationStatusInvalid(t *testing.T) {
	_, err := NewApplicationStatus("Pending Review")
	assert.Error(t, err)
}

func TestApplicationStatusIsZero(t *testing.T) {
	var s ApplicationStatus
	assert.True(t, s.IsZero())
	assert.False(t, ApplicationStatusDraft.IsZero())
}

func TestApplicationStatusAllVariantsParse(t *testing.T) {
	variants := []string{
		"Draft", "Submitted", "Under Review", "In Underwriting",
		"Approved", "Rejected", "Withdrawn", "Expired",
	}
	for _, v := range variants {
		s, err := NewApplicationStatus(v)
		require.NoError(t, err, v)
		assert.Equal(t, v, s.String())
	}
}
