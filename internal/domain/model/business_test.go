package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthsInBusinessWholeYears(t *testing.T) {
	b := Business{EstablishedDate: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)}
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 72, b.MonthsInBusiness(now))
}

func TestMonthsInBusinessPartialMonthRoundsDown(t *testing.T) {
	b := Business{EstablishedDate: time.Date(2020, 1, 20, 0, 0, 0, 0, time.UTC)}
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 71, b.MonthsInBusiness(now))
}

func TestMonthsInBusinessFuturedDateClampsZero(t *testing.T) {
	b := Business{EstablishedDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, b.MonthsInBusiness(now))
}
