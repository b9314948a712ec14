package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// PropertyTaxCalculator computes annual property tax. Holdings are exempt
// while the annual family income stays at or below the configured threshold;
// above it, each holding owes marketValue * rate. The threshold figure is
// legally ambiguous (40,000 individual vs 65,000 family income), so the
// calculator takes it from the rule set and honours per-holding overrides
// instead of hard-coding either constant.
type PropertyTaxCalculator struct {
	Rate      decimal.Decimal
	Threshold decimal.Decimal
}

// NewPropertyTaxCalculator creates a property tax calculator from the rule
// set. Returns a ConfigurationError when the threshold basis is unknown.
func NewPropertyTaxCalculator(rules domain.PropertyTaxRules) (*PropertyTaxCalculator, error) {
	threshold, err := rules.Threshold()
	if err != nil {
		return nil, err
	}
	return &PropertyTaxCalculator{Rate: rules.Rate, Threshold: threshold}, nil
}

// Calculate computes property tax across all holdings against the shared
// family income figure.
func (pc *PropertyTaxCalculator) Calculate(items []domain.PropertyHolding, familyIncome decimal.Decimal) domain.RegimeResult {
	rec := newStepRecorder()
	totalTax := decimal.Zero
	var warnings []string

	rec.Record(
		"property_income_check",
		"Family income threshold check",
		fmt.Sprintf("family_income > %s", amount(pc.Threshold)),
		fmt.Sprintf("%s > %s", amount(familyIncome), amount(pc.Threshold)),
		familyIncome,
		"RS.ge - Property Tax",
	)

	// When no holding carries its own threshold, the exemption is a single
	// decision for the whole set and gets a single explanatory step.
	if familyIncome.LessThanOrEqual(pc.Threshold) && !anyOverride(items) {
		rec.Record(
			"property_exempt",
			"Property tax (exempt: income below threshold)",
			"tax = 0 (below threshold exemption)",
			fmt.Sprintf("tax = 0 (income %s <= %s)", amount(familyIncome), amount(pc.Threshold)),
			decimal.Zero,
			"RS.ge - Property Tax (Threshold Exemption)",
		)
		return domain.RegimeResult{
			RegimeID: domain.RegimePropertyTax,
			Tax:      decimal.Zero,
			Income:   decimal.Zero,
			Steps:    rec.Steps(),
			Warnings: warnings,
		}
	}

	for idx, prop := range items {
		if !prop.MarketValue.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("Property %d: skipped, market value must be positive", idx+1))
			continue
		}

		threshold := pc.Threshold
		if prop.ThresholdOverride.IsPositive() {
			threshold = prop.ThresholdOverride
		}

		if familyIncome.LessThanOrEqual(threshold) {
			rec.Record(
				fmt.Sprintf("property_%d_tax", idx),
				fmt.Sprintf("Property %d tax (exempt: income below threshold)", idx+1),
				"tax = 0 (below threshold exemption)",
				fmt.Sprintf("tax = 0 (income %s <= %s)", amount(familyIncome), amount(threshold)),
				decimal.Zero,
				"RS.ge - Property Tax (Threshold Exemption)",
			)
			continue
		}

		tax := prop.MarketValue.Mul(pc.Rate)
		rec.Record(
			fmt.Sprintf("property_%d_tax", idx),
			fmt.Sprintf("Property %d tax (%s%% of market value)", idx+1, pc.Rate.Mul(decimal.NewFromInt(100)).String()),
			"tax = market_value * rate",
			fmt.Sprintf("tax = %s * %s", amount(prop.MarketValue), pc.Rate.String()),
			tax,
			"RS.ge - Property Tax",
		)
		totalTax = totalTax.Add(tax)
	}

	// Property tax is a wealth levy: holdings contribute no income to the
	// effective-rate denominator.
	return domain.RegimeResult{
		RegimeID: domain.RegimePropertyTax,
		Tax:      totalTax,
		Income:   decimal.Zero,
		Steps:    rec.Steps(),
		Warnings: warnings,
	}
}

func anyOverride(items []domain.PropertyHolding) bool {
	for _, p := range items {
		if p.ThresholdOverride.IsPositive() {
			return true
		}
	}
	return false
}
