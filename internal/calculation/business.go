package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// MicroBusinessCalculator applies the 0% micro business regime. Eligibility
// requires no employees, an allowed activity, and turnover within the
// ceiling; a failed condition does not zero the tax, it reclassifies the
// whole turnover as ordinary income at the fallback rate.
type MicroBusinessCalculator struct {
	TurnoverCeiling decimal.Decimal
	FallbackRate    decimal.Decimal
}

// NewMicroBusinessCalculator creates a micro business calculator from the rule set.
func NewMicroBusinessCalculator(rules domain.MicroBusinessRules) *MicroBusinessCalculator {
	return &MicroBusinessCalculator{
		TurnoverCeiling: rules.TurnoverCeiling,
		FallbackRate:    rules.FallbackRate,
	}
}

// Calculate evaluates each micro business entry independently.
func (mc *MicroBusinessCalculator) Calculate(items []domain.MicroBusinessIncome) domain.RegimeResult {
	rec := newStepRecorder()
	totalTax := decimal.Zero
	totalTurnover := decimal.Zero
	var warnings []string

	for idx, micro := range items {
		if !micro.Turnover.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("Micro business %d: skipped, turnover must be positive", idx+1))
			continue
		}

		withinCeiling := micro.Turnover.LessThanOrEqual(mc.TurnoverCeiling)
		if !micro.NoEmployees {
			warnings = append(warnings, fmt.Sprintf("Micro business %d: has employees - does not qualify for 0%% rate", idx+1))
		}
		if !micro.ActivityAllowed {
			warnings = append(warnings, fmt.Sprintf("Micro business %d: activity is not allowed under the micro regime", idx+1))
		}
		if !withinCeiling {
			warnings = append(warnings, fmt.Sprintf("Micro business %d: turnover exceeds the %s GEL ceiling", idx+1, amount(mc.TurnoverCeiling)))
		}

		if micro.NoEmployees && micro.ActivityAllowed && withinCeiling {
			rec.Record(
				fmt.Sprintf("micro_%d_tax", idx),
				"Micro business tax (0%, all conditions met)",
				"tax = turnover * 0.00",
				fmt.Sprintf("tax = %s * 0.00", amount(micro.Turnover)),
				decimal.Zero,
				"RS.ge - Micro Business Tax Regime",
			)
		} else {
			fallbackTax := micro.Turnover.Mul(mc.FallbackRate)
			rec.Record(
				fmt.Sprintf("micro_%d_tax", idx),
				fmt.Sprintf("Micro business tax (fallback: %s%% PIT, conditions not met)", mc.FallbackRate.Mul(decimal.NewFromInt(100)).String()),
				"tax = turnover * fallback_rate",
				fmt.Sprintf("tax = %s * %s", amount(micro.Turnover), mc.FallbackRate.String()),
				fallbackTax,
				"RS.ge - Personal Income Tax",
			)
			totalTax = totalTax.Add(fallbackTax)
		}

		totalTurnover = totalTurnover.Add(micro.Turnover)
	}

	return domain.RegimeResult{
		RegimeID: domain.RegimeMicroBusiness,
		Tax:      totalTax,
		Income:   totalTurnover,
		Steps:    rec.Steps(),
		Warnings: warnings,
	}
}

// SmallBusinessCalculator applies the two-bracket small business turnover
// tax: the base rate up to the threshold and the excess rate above it, as two
// explicit steps rather than one blended rate.
type SmallBusinessCalculator struct {
	Threshold  decimal.Decimal
	BaseRate   decimal.Decimal
	ExcessRate decimal.Decimal
}

// NewSmallBusinessCalculator creates a small business calculator from the rule set.
func NewSmallBusinessCalculator(rules domain.SmallBusinessRules) *SmallBusinessCalculator {
	return &SmallBusinessCalculator{
		Threshold:  rules.Threshold,
		BaseRate:   rules.BaseRate,
		ExcessRate: rules.ExcessRate,
	}
}

// Calculate computes tax for each small business entry.
func (sc *SmallBusinessCalculator) Calculate(items []domain.SmallBusinessIncome) domain.RegimeResult {
	rec := newStepRecorder()
	totalTax := decimal.Zero
	totalTurnover := decimal.Zero
	var warnings []string

	for idx, small := range items {
		if !small.Turnover.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("Small business %d: skipped, turnover must be positive", idx+1))
			continue
		}
		if !small.Registered {
			warnings = append(warnings, fmt.Sprintf("Small business %d: not registered as a small business", idx+1))
		}

		var tax decimal.Decimal
		if small.Turnover.LessThanOrEqual(sc.Threshold) {
			tax = small.Turnover.Mul(sc.BaseRate)
			rec.Record(
				fmt.Sprintf("small_%d_tax", idx),
				fmt.Sprintf("Small business tax (%s%% up to %s GEL)", sc.BaseRate.Mul(decimal.NewFromInt(100)).String(), amount(sc.Threshold)),
				"tax = turnover * base_rate",
				fmt.Sprintf("tax = %s * %s", amount(small.Turnover), sc.BaseRate.String()),
				tax,
				"RS.ge - Small Business Tax Regime",
			)
		} else {
			baseTax := sc.Threshold.Mul(sc.BaseRate)
			excess := small.Turnover.Sub(sc.Threshold)
			excessTax := excess.Mul(sc.ExcessRate)
			tax = baseTax.Add(excessTax)

			rec.Record(
				fmt.Sprintf("small_%d_tax_base", idx),
				fmt.Sprintf("Small business tax: %s%% on first %s GEL", sc.BaseRate.Mul(decimal.NewFromInt(100)).String(), amount(sc.Threshold)),
				"tax_base = min(turnover, threshold) * base_rate",
				fmt.Sprintf("tax_base = %s * %s", amount(sc.Threshold), sc.BaseRate.String()),
				baseTax,
				"RS.ge - Small Business Tax Regime",
			)
			rec.Record(
				fmt.Sprintf("small_%d_tax_excess", idx),
				fmt.Sprintf("Small business tax: %s%% on excess above %s GEL", sc.ExcessRate.Mul(decimal.NewFromInt(100)).String(), amount(sc.Threshold)),
				"tax_excess = max(turnover - threshold, 0) * excess_rate",
				fmt.Sprintf("tax_excess = %s * %s", amount(excess), sc.ExcessRate.String()),
				excessTax,
				"RS.ge - Small Business Tax Regime",
			)
			rec.Record(
				fmt.Sprintf("small_%d_tax_total", idx),
				"Total small business tax",
				"tax = tax_base + tax_excess",
				fmt.Sprintf("tax = %s + %s", amount(baseTax), amount(excessTax)),
				tax,
				"RS.ge - Small Business Tax Regime",
			)

			warnings = append(warnings, fmt.Sprintf("Small business %d: turnover exceeds the %s GEL threshold - small business status may be revoked", idx+1, amount(sc.Threshold)))
		}

		totalTax = totalTax.Add(tax)
		totalTurnover = totalTurnover.Add(small.Turnover)
	}

	return domain.RegimeResult{
		RegimeID: domain.RegimeSmallBusiness,
		Tax:      totalTax,
		Income:   totalTurnover,
		Steps:    rec.Steps(),
		Warnings: warnings,
	}
}
