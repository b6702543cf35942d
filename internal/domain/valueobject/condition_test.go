package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConditionValid(t *testing.T) {
	c, err := NewCondition("Certified Pre-Owned")
	require.NoError(t, err)
	assert.Equal(t, "Certified Pre-Owned", c.String())
	assert.True(t, c.Equal(ConditionCertifiedPreOwned))
}

func TestNewConditionInvalid(t *testing.T) {
	_, err := NewCondition("Salvage")
	assert.Error(t, err)
}

func TestConditionIsZero(t *testing.T) {
	var c Condition
	assert.True(t, c.IsZero())
	assert.False(t, ConditionNew.IsZero())
}
