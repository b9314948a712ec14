package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkharadze/taxge/internal/domain"
)

func TestRentalCalculator_SpecialRegime(t *testing.T) {
	calc := NewRentalCalculator(domain.DefaultTaxRules().Rental)

	result := calc.Calculate([]domain.RentalIncome{
		{MonthlyRent: decimal.NewFromInt(1200), Months: 12, UseSpecialRegime: true},
	})

	assertDecimal(t, "720", result.Tax, "5% of 14,400 annual rent")
	assertDecimal(t, "14400", result.Income)
	require.Len(t, result.Steps, 2)
	assert.Contains(t, result.Steps[1].Description, "special regime")
}

func TestRentalCalculator_StandardRate(t *testing.T) {
	calc := NewRentalCalculator(domain.DefaultTaxRules().Rental)

	result := calc.Calculate([]domain.RentalIncome{
		{MonthlyRent: decimal.NewFromInt(1200), Months: 12, UseSpecialRegime: false},
	})

	assertDecimal(t, "2880", result.Tax, "20% standard PIT on 14,400")
}

func TestRentalCalculator_PerPropertySteps(t *testing.T) {
	calc := NewRentalCalculator(domain.DefaultTaxRules().Rental)

	result := calc.Calculate([]domain.RentalIncome{
		{MonthlyRent: decimal.NewFromInt(1000), Months: 12, UseSpecialRegime: true},
		{MonthlyRent: decimal.NewFromInt(800), Months: 10, UseSpecialRegime: false},
	})

	assertDecimal(t, "20000", result.Income, "12,000 + 8,000")
	assertDecimal(t, "2200", result.Tax, "600 special + 1,600 standard")
	assert.Len(t, result.Steps, 4, "gross and tax step per property")
}

func TestRentalCalculator_InvalidItemSkipped(t *testing.T) {
	calc := NewRentalCalculator(domain.DefaultTaxRules().Rental)

	result := calc.Calculate([]domain.RentalIncome{
		{MonthlyRent: decimal.NewFromInt(1000), Months: -1, UseSpecialRegime: true},
	})

	assertDecimal(t, "0", result.Tax)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Rental property 1")
}
