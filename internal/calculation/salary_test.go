package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkharadze/taxge/internal/domain"
)

func TestSalaryCalculator_SingleSource(t *testing.T) {
	calc := NewSalaryCalculator(domain.DefaultTaxRules().Salary)

	result := calc.Calculate([]domain.SalaryIncome{
		{MonthlyGross: decimal.NewFromInt(5000), Months: 12},
	})

	assert.Equal(t, domain.RegimeSalary, result.RegimeID)
	assertDecimal(t, "12000", result.Tax, "20% PIT on 60,000 gross")
	assertDecimal(t, "60000", result.Income)
	require.Len(t, result.Steps, 3, "gross, pension, PIT")
	assert.Equal(t, "salary_0_gross", result.Steps[0].ID)
	assertDecimal(t, "60000", result.Steps[0].Result)
	assertDecimal(t, "1200", result.Steps[1].Result, "2% pension contribution, informational")
	assertDecimal(t, "12000", result.Steps[2].Result)
	assert.Empty(t, result.Warnings)
}

func TestSalaryCalculator_PensionNotDeductedFromTax(t *testing.T) {
	calc := NewSalaryCalculator(domain.DefaultTaxRules().Salary)

	result := calc.Calculate([]domain.SalaryIncome{
		{MonthlyGross: decimal.NewFromInt(1000), Months: 12},
	})

	// Tax stays 20% of gross; the pension step is recorded but never
	// reduces the PIT base.
	assertDecimal(t, "2400", result.Tax)
}

func TestSalaryCalculator_PerItemPensionRateOverride(t *testing.T) {
	calc := NewSalaryCalculator(domain.DefaultTaxRules().Salary)

	result := calc.Calculate([]domain.SalaryIncome{
		{MonthlyGross: decimal.NewFromInt(1000), Months: 12, PensionRate: decimal.NewFromFloat(0.04)},
	})

	require.Len(t, result.Steps, 3)
	assertDecimal(t, "480", result.Steps[1].Result, "4% of 12,000")
}

func TestSalaryCalculator_MultipleSources(t *testing.T) {
	calc := NewSalaryCalculator(domain.DefaultTaxRules().Salary)

	result := calc.Calculate([]domain.SalaryIncome{
		{MonthlyGross: decimal.NewFromInt(3000), Months: 6},
		{MonthlyGross: decimal.NewFromInt(2000), Months: 12},
	})

	assertDecimal(t, "42000", result.Income, "18,000 + 24,000")
	assertDecimal(t, "8400", result.Tax)
	assert.Len(t, result.Steps, 6)
}

func TestSalaryCalculator_InvalidItemSkippedWithWarning(t *testing.T) {
	calc := NewSalaryCalculator(domain.DefaultTaxRules().Salary)

	result := calc.Calculate([]domain.SalaryIncome{
		{MonthlyGross: decimal.NewFromInt(-100), Months: 12},
		{MonthlyGross: decimal.NewFromInt(1000), Months: 0},
		{MonthlyGross: decimal.NewFromInt(5000), Months: 12},
	})

	assertDecimal(t, "12000", result.Tax, "only the valid source is taxed")
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "Salary source 1")
	assert.Contains(t, result.Warnings[1], "Salary source 2")
	assert.Len(t, result.Steps, 3, "no steps recorded for skipped items")
}

func TestSalaryCalculator_NoItems(t *testing.T) {
	calc := NewSalaryCalculator(domain.DefaultTaxRules().Salary)

	result := calc.Calculate(nil)

	assertDecimal(t, "0", result.Tax)
	assert.Empty(t, result.Steps)
}
