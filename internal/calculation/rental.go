package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// RentalCalculator taxes rental income either under the elective 5% special
// regime or at the standard PIT rate, per property. No deduction modelling.
type RentalCalculator struct {
	SpecialRate  decimal.Decimal
	StandardRate decimal.Decimal
}

// NewRentalCalculator creates a rental calculator from the rule set.
func NewRentalCalculator(rules domain.RentalRules) *RentalCalculator {
	return &RentalCalculator{
		SpecialRate:  rules.SpecialRate,
		StandardRate: rules.StandardRate,
	}
}

// Calculate computes rental tax for each property.
func (rc *RentalCalculator) Calculate(items []domain.RentalIncome) domain.RegimeResult {
	rec := newStepRecorder()
	totalTax := decimal.Zero
	totalRent := decimal.Zero
	var warnings []string

	for idx, rental := range items {
		if !rental.MonthlyRent.IsPositive() || rental.Months <= 0 {
			warnings = append(warnings, fmt.Sprintf("Rental property %d: skipped, monthly rent and months must be positive", idx+1))
			continue
		}

		annualRent := rental.MonthlyRent.Mul(decimal.NewFromInt(int64(rental.Months)))
		rec.Record(
			fmt.Sprintf("rental_%d_gross", idx),
			fmt.Sprintf("Annual rental income (property %d)", idx+1),
			"annual_rent = monthly_rent * months",
			fmt.Sprintf("annual_rent = %s * %d", amount(rental.MonthlyRent), rental.Months),
			annualRent,
			"RS.ge - Rental Income Tax",
		)

		var tax decimal.Decimal
		if rental.UseSpecialRegime {
			tax = annualRent.Mul(rc.SpecialRate)
			rec.Record(
				fmt.Sprintf("rental_%d_tax", idx),
				fmt.Sprintf("Rental tax (%s%% special regime)", rc.SpecialRate.Mul(decimal.NewFromInt(100)).String()),
				"tax = annual_rent * special_rate",
				fmt.Sprintf("tax = %s * %s", amount(annualRent), rc.SpecialRate.String()),
				tax,
				"RS.ge - Rental Income Special Regime (5%)",
			)
		} else {
			tax = annualRent.Mul(rc.StandardRate)
			rec.Record(
				fmt.Sprintf("rental_%d_tax", idx),
				fmt.Sprintf("Rental tax (standard %s%% PIT)", rc.StandardRate.Mul(decimal.NewFromInt(100)).String()),
				"tax = annual_rent * standard_rate",
				fmt.Sprintf("tax = %s * %s", amount(annualRent), rc.StandardRate.String()),
				tax,
				"RS.ge - Personal Income Tax",
			)
		}

		totalTax = totalTax.Add(tax)
		totalRent = totalRent.Add(annualRent)
	}

	return domain.RegimeResult{
		RegimeID: domain.RegimeRental,
		Tax:      totalTax,
		Income:   totalRent,
		Steps:    rec.Steps(),
		Warnings: warnings,
	}
}
