package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAssumptionsFromEnv(t *testing.T) {
	t.Setenv("FIREPLAN_ANNUAL_RETURN", "5.5")
	t.Setenv("FIREPLAN_GOVERNMENT_BORROWING_RATE", "3")

	assumptions, err := DefaultAssumptionsFromEnv()
	require.NoError(t, err)

	assert.True(t, assumptions.AnnualReturn.Equal(decimal.NewFromFloat(5.5)))
	assert.True(t, assumptions.Tax.GovernmentBorrowingRate.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 90, assumptions.HorizonAge, "unset variables keep the default")
}

func TestDefaultAssumptionsFromEnv_Invalid(t *testing.T) {
	t.Setenv("FIREPLAN_TAX_ENABLED", "maybe")

	_, err := DefaultAssumptionsFromEnv()
	assert.ErrorContains(t, err, "parse env")
}
