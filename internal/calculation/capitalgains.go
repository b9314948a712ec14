package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// CapitalGainsCalculator taxes each disposal independently: primary
// residences are exempt regardless of the gain, losses are not taxed and are
// not offset against other items.
type CapitalGainsCalculator struct {
	Rate decimal.Decimal
}

// NewCapitalGainsCalculator creates a capital gains calculator from the rule set.
func NewCapitalGainsCalculator(rules domain.CapitalGainsRules) *CapitalGainsCalculator {
	return &CapitalGainsCalculator{Rate: rules.Rate}
}

// Calculate computes capital gains tax per item.
func (cc *CapitalGainsCalculator) Calculate(items []domain.CapitalGainsIncome) domain.RegimeResult {
	rec := newStepRecorder()
	totalTax := decimal.Zero
	totalGains := decimal.Zero
	var warnings []string

	for idx, cg := range items {
		if !cg.SalePrice.IsPositive() || !cg.PurchasePrice.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("Capital gains item %d: skipped, purchase and sale price must be positive", idx+1))
			continue
		}

		gain := cg.SalePrice.Sub(cg.PurchasePrice)
		rec.Record(
			fmt.Sprintf("cg_%d_gain", idx),
			fmt.Sprintf("Capital gain (asset %d)", idx+1),
			"gain = sale_price - purchase_price",
			fmt.Sprintf("gain = %s - %s", amount(cg.SalePrice), amount(cg.PurchasePrice)),
			gain,
			"RS.ge - Capital Gains Tax",
		)

		// The gross base counts realized gains only; losses contribute nothing.
		if gain.IsPositive() {
			totalGains = totalGains.Add(gain)
		}

		// Exemption takes precedence over the loss branch so the trace names
		// the reason the tax is zero.
		if cg.IsPrimaryResidence {
			rec.Record(
				fmt.Sprintf("cg_%d_tax", idx),
				"Capital gains tax (exempt: primary residence)",
				"tax = 0 (exempt)",
				"tax = 0",
				decimal.Zero,
				"RS.ge - Capital Gains Tax (Primary Residence Exemption)",
			)
			continue
		}

		if !gain.IsPositive() {
			rec.Record(
				fmt.Sprintf("cg_%d_tax", idx),
				"No tax on capital loss",
				"tax = 0 (loss, no tax)",
				"tax = 0",
				decimal.Zero,
				"RS.ge - Capital Gains Tax",
			)
			continue
		}

		tax := gain.Mul(cc.Rate)
		rec.Record(
			fmt.Sprintf("cg_%d_tax", idx),
			fmt.Sprintf("Capital gains tax (%s%%)", cc.Rate.Mul(decimal.NewFromInt(100)).String()),
			"tax = gain * rate",
			fmt.Sprintf("tax = %s * %s", amount(gain), cc.Rate.String()),
			tax,
			"RS.ge - Capital Gains Tax (5%)",
		)
		totalTax = totalTax.Add(tax)
	}

	return domain.RegimeResult{
		RegimeID: domain.RegimeCapitalGains,
		Tax:      totalTax,
		Income:   totalGains,
		Steps:    rec.Steps(),
		Warnings: warnings,
	}
}
