package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// Dividends and interest are both taxed by final withholding on the summed
// total: one aggregated step pair per regime, not a step per item. Capital
// gains keeps per-item granularity; this asymmetry is deliberate and mirrors
// how the amounts are reported.

// DividendsCalculator applies the final withholding rate to total dividends.
type DividendsCalculator struct {
	Rate decimal.Decimal
}

// NewDividendsCalculator creates a dividends calculator from the rule set.
func NewDividendsCalculator(rules domain.WithholdingRules) *DividendsCalculator {
	return &DividendsCalculator{Rate: rules.DividendsRate}
}

// Calculate sums all dividend receipts and applies the withholding rate once.
func (dc *DividendsCalculator) Calculate(items []domain.DividendIncome) domain.RegimeResult {
	amounts := make([]decimal.Decimal, len(items))
	for i, d := range items {
		amounts[i] = d.Amount
	}
	return withholdingResult(domain.RegimeDividends, "dividends", "Dividends", amounts, dc.Rate, "RS.ge - Dividends Tax")
}

// InterestCalculator applies the final withholding rate to total interest.
type InterestCalculator struct {
	Rate decimal.Decimal
}

// NewInterestCalculator creates an interest calculator from the rule set.
func NewInterestCalculator(rules domain.WithholdingRules) *InterestCalculator {
	return &InterestCalculator{Rate: rules.InterestRate}
}

// Calculate sums all interest receipts and applies the withholding rate once.
func (ic *InterestCalculator) Calculate(items []domain.InterestIncome) domain.RegimeResult {
	amounts := make([]decimal.Decimal, len(items))
	for i, d := range items {
		amounts[i] = d.Amount
	}
	return withholdingResult(domain.RegimeInterest, "interest", "Interest", amounts, ic.Rate, "RS.ge - Interest Income Tax")
}

func withholdingResult(regimeID, stepPrefix, label string, amounts []decimal.Decimal, rate decimal.Decimal, legalRef string) domain.RegimeResult {
	rec := newStepRecorder()
	total := decimal.Zero
	var warnings []string

	for idx, a := range amounts {
		if a.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("%s item %d: skipped, amount must not be negative", label, idx+1))
			continue
		}
		total = total.Add(a)
	}

	tax := decimal.Zero
	if total.IsPositive() {
		tax = total.Mul(rate)
		rec.Record(
			stepPrefix+"_total",
			fmt.Sprintf("Total %s received", stepPrefix),
			fmt.Sprintf("total = sum(%s)", stepPrefix),
			fmt.Sprintf("total = %s", amount(total)),
			total,
			legalRef,
		)
		rec.Record(
			stepPrefix+"_tax",
			fmt.Sprintf("%s tax (%s%% final withholding)", label, rate.Mul(decimal.NewFromInt(100)).String()),
			"tax = total * rate",
			fmt.Sprintf("tax = %s * %s", amount(total), rate.String()),
			tax,
			fmt.Sprintf("%s (%s%%)", legalRef, rate.Mul(decimal.NewFromInt(100)).String()),
		)
	}

	return domain.RegimeResult{
		RegimeID: regimeID,
		Tax:      tax,
		Income:   total,
		Steps:    rec.Steps(),
		Warnings: warnings,
	}
}
