package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// SalaryCalculator applies the flat PIT rate to employment income. The
// employee pension contribution is recorded for reference but is not
// deducted from the tax base under the current rule set.
type SalaryCalculator struct {
	PITRate     decimal.Decimal
	PensionRate decimal.Decimal
}

// NewSalaryCalculator creates a salary calculator from the rule set.
func NewSalaryCalculator(rules domain.SalaryRules) *SalaryCalculator {
	return &SalaryCalculator{
		PITRate:     rules.PITRate,
		PensionRate: rules.PensionEmployeeRate,
	}
}

// Calculate computes PIT for every salary source. Items with a non-positive
// monthly gross or month count are skipped with a warning; they never abort
// the remaining sources.
func (sc *SalaryCalculator) Calculate(items []domain.SalaryIncome) domain.RegimeResult {
	rec := newStepRecorder()
	totalTax := decimal.Zero
	totalGross := decimal.Zero
	var warnings []string

	for idx, salary := range items {
		if !salary.MonthlyGross.IsPositive() || salary.Months <= 0 {
			warnings = append(warnings, fmt.Sprintf("Salary source %d: skipped, monthly gross and months must be positive", idx+1))
			continue
		}

		months := decimal.NewFromInt(int64(salary.Months))
		gross := salary.MonthlyGross.Mul(months)
		rec.Record(
			fmt.Sprintf("salary_%d_gross", idx),
			fmt.Sprintf("Annual gross salary (source %d)", idx+1),
			"gross = monthly_gross * months",
			fmt.Sprintf("gross = %s * %d", amount(salary.MonthlyGross), salary.Months),
			gross,
			"RS.ge - Personal Income Tax",
		)

		pensionRate := salary.PensionRate
		if pensionRate.IsZero() {
			pensionRate = sc.PensionRate
		}
		pension := gross.Mul(pensionRate)
		rec.Record(
			fmt.Sprintf("salary_%d_pension", idx),
			fmt.Sprintf("Employee pension contribution (%s%%)", pensionRate.Mul(decimal.NewFromInt(100)).String()),
			"pension = gross * pension_rate",
			fmt.Sprintf("pension = %s * %s", amount(gross), pensionRate.String()),
			pension,
			"RS.ge - Pension Contributions",
		)

		pit := gross.Mul(sc.PITRate)
		rec.Record(
			fmt.Sprintf("salary_%d_pit", idx),
			fmt.Sprintf("Personal Income Tax (PIT) %s%% on salary", sc.PITRate.Mul(decimal.NewFromInt(100)).String()),
			"pit = gross * pit_rate",
			fmt.Sprintf("pit = %s * %s", amount(gross), sc.PITRate.String()),
			pit,
			"RS.ge - Personal Income Tax Law, Article 81",
		)

		totalTax = totalTax.Add(pit)
		totalGross = totalGross.Add(gross)
	}

	return domain.RegimeResult{
		RegimeID: domain.RegimeSalary,
		Tax:      totalTax,
		Income:   totalGross,
		Steps:    rec.Steps(),
		Warnings: warnings,
	}
}
