package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkharadze/taxge/internal/domain"
)

func TestDividendsCalculator_AggregatedStepPair(t *testing.T) {
	calc := NewDividendsCalculator(domain.DefaultTaxRules().Withholding)

	result := calc.Calculate([]domain.DividendIncome{
		{Amount: decimal.NewFromInt(10000)},
		{Amount: decimal.NewFromInt(5000)},
	})

	assertDecimal(t, "750", result.Tax, "5% of the summed 15,000")
	assertDecimal(t, "15000", result.Income)
	// Unlike capital gains, dividends are summed before the rate applies:
	// two steps total, never two per item.
	require.Len(t, result.Steps, 2)
	assert.Equal(t, "dividends_total", result.Steps[0].ID)
	assert.Equal(t, "dividends_tax", result.Steps[1].ID)
}

func TestInterestCalculator_AggregatedStepPair(t *testing.T) {
	calc := NewInterestCalculator(domain.DefaultTaxRules().Withholding)

	result := calc.Calculate([]domain.InterestIncome{
		{Amount: decimal.NewFromInt(3000)},
	})

	assertDecimal(t, "150", result.Tax)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, "interest_tax", result.Steps[1].ID)
}

func TestWithholding_NegativeAmountWarns(t *testing.T) {
	calc := NewDividendsCalculator(domain.DefaultTaxRules().Withholding)

	result := calc.Calculate([]domain.DividendIncome{
		{Amount: decimal.NewFromInt(-100)},
		{Amount: decimal.NewFromInt(1000)},
	})

	assertDecimal(t, "50", result.Tax, "negative receipt excluded from the sum")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Dividends item 1")
}

func TestWithholding_ZeroTotalProducesNoSteps(t *testing.T) {
	calc := NewInterestCalculator(domain.DefaultTaxRules().Withholding)

	result := calc.Calculate([]domain.InterestIncome{{Amount: decimal.Zero}})

	assertDecimal(t, "0", result.Tax)
	assert.Empty(t, result.Steps)
}
