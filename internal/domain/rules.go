package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConfigurationError indicates an unusable rule set: a missing or nonsensical
// rate or threshold. It signals a deployment problem, as opposed to bad user
// input, which is handled per item inside the calculators.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tax rules: %s: %s", e.Field, e.Reason)
}

// ThresholdBasis selects which property-tax income threshold applies. The
// official RS.ge figure is 40,000 GEL of individual income, but several
// sources cite 65,000 GEL of family income; both are carried so deployments
// can pick either without a code change.
type ThresholdBasis string

const (
	ThresholdIndividual ThresholdBasis = "individual"
	ThresholdFamily     ThresholdBasis = "family"
)

// SalaryRules holds the employment income parameters.
type SalaryRules struct {
	PITRate             decimal.Decimal `yaml:"pit_rate" json:"pit_rate"`
	PensionEmployeeRate decimal.Decimal `yaml:"pension_employee_rate" json:"pension_employee_rate"`
}

// MicroBusinessRules holds the micro business eligibility ceiling and the
// rate applied when eligibility fails and the turnover is reclassified as
// ordinary income.
type MicroBusinessRules struct {
	TurnoverCeiling decimal.Decimal `yaml:"turnover_ceiling" json:"turnover_ceiling"`
	FallbackRate    decimal.Decimal `yaml:"fallback_rate" json:"fallback_rate"`
}

// SmallBusinessRules holds the two-bracket small business turnover tax.
type SmallBusinessRules struct {
	Threshold  decimal.Decimal `yaml:"threshold" json:"threshold"`
	BaseRate   decimal.Decimal `yaml:"base_rate" json:"base_rate"`
	ExcessRate decimal.Decimal `yaml:"excess_rate" json:"excess_rate"`
}

// RentalRules holds the elective 5% regime rate and the standard PIT rate.
type RentalRules struct {
	SpecialRate  decimal.Decimal `yaml:"special_rate" json:"special_rate"`
	StandardRate decimal.Decimal `yaml:"standard_rate" json:"standard_rate"`
}

// CapitalGainsRules holds the rate applied to positive gains.
type CapitalGainsRules struct {
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// WithholdingRules holds the final withholding rates on passive income.
type WithholdingRules struct {
	DividendsRate decimal.Decimal `yaml:"dividends_rate" json:"dividends_rate"`
	InterestRate  decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
}

// PropertyTaxRules holds the annual property tax rate and the income
// threshold below which properties are exempt.
type PropertyTaxRules struct {
	Rate                decimal.Decimal `yaml:"rate" json:"rate"`
	ThresholdIndividual decimal.Decimal `yaml:"threshold_individual" json:"threshold_individual"`
	ThresholdFamily     decimal.Decimal `yaml:"threshold_family" json:"threshold_family"`
	Basis               ThresholdBasis  `yaml:"basis" json:"basis"`
}

// Threshold returns the income threshold selected by Basis.
func (pr PropertyTaxRules) Threshold() (decimal.Decimal, error) {
	switch pr.Basis {
	case ThresholdIndividual:
		return pr.ThresholdIndividual, nil
	case ThresholdFamily:
		return pr.ThresholdFamily, nil
	default:
		return decimal.Zero, &ConfigurationError{Field: "property_tax.basis", Reason: fmt.Sprintf("unknown threshold basis %q", pr.Basis)}
	}
}

// TaxRules is the complete injected rule set for one calculation. Rates and
// thresholds live here rather than as package constants so that year-over-year
// rule changes are configuration, not code.
type TaxRules struct {
	Version       string             `yaml:"version" json:"version"`
	Salary        SalaryRules        `yaml:"salary" json:"salary"`
	MicroBusiness MicroBusinessRules `yaml:"micro_business" json:"micro_business"`
	SmallBusiness SmallBusinessRules `yaml:"small_business" json:"small_business"`
	Rental        RentalRules        `yaml:"rental" json:"rental"`
	CapitalGains  CapitalGainsRules  `yaml:"capital_gains" json:"capital_gains"`
	Withholding   WithholdingRules   `yaml:"withholding" json:"withholding"`
	PropertyTax   PropertyTaxRules   `yaml:"property_tax" json:"property_tax"`
}

// DefaultTaxRules returns the 2025 Georgian rule set.
func DefaultTaxRules() TaxRules {
	return TaxRules{
		Version: "2025.01",
		Salary: SalaryRules{
			PITRate:             decimal.NewFromFloat(0.20),
			PensionEmployeeRate: decimal.NewFromFloat(0.02),
		},
		MicroBusiness: MicroBusinessRules{
			TurnoverCeiling: decimal.NewFromInt(200000),
			FallbackRate:    decimal.NewFromFloat(0.20),
		},
		SmallBusiness: SmallBusinessRules{
			Threshold:  decimal.NewFromInt(500000),
			BaseRate:   decimal.NewFromFloat(0.01),
			ExcessRate: decimal.NewFromFloat(0.03),
		},
		Rental: RentalRules{
			SpecialRate:  decimal.NewFromFloat(0.05),
			StandardRate: decimal.NewFromFloat(0.20),
		},
		CapitalGains: CapitalGainsRules{
			Rate: decimal.NewFromFloat(0.05),
		},
		Withholding: WithholdingRules{
			DividendsRate: decimal.NewFromFloat(0.05),
			InterestRate:  decimal.NewFromFloat(0.05),
		},
		PropertyTax: PropertyTaxRules{
			Rate:                decimal.NewFromFloat(0.01),
			ThresholdIndividual: decimal.NewFromInt(40000),
			ThresholdFamily:     decimal.NewFromInt(65000),
			Basis:               ThresholdIndividual,
		},
	}
}

// Validate checks that every rate and threshold the calculators depend on is
// present and usable. A failure here is a ConfigurationError.
func (r TaxRules) Validate() error {
	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"salary.pit_rate", r.Salary.PITRate},
		{"salary.pension_employee_rate", r.Salary.PensionEmployeeRate},
		{"micro_business.fallback_rate", r.MicroBusiness.FallbackRate},
		{"small_business.base_rate", r.SmallBusiness.BaseRate},
		{"small_business.excess_rate", r.SmallBusiness.ExcessRate},
		{"rental.special_rate", r.Rental.SpecialRate},
		{"rental.standard_rate", r.Rental.StandardRate},
		{"capital_gains.rate", r.CapitalGains.Rate},
		{"withholding.dividends_rate", r.Withholding.DividendsRate},
		{"withholding.interest_rate", r.Withholding.InterestRate},
		{"property_tax.rate", r.PropertyTax.Rate},
	}
	one := decimal.NewFromInt(1)
	for _, rt := range rates {
		if rt.value.IsNegative() || rt.value.GreaterThan(one) {
			return &ConfigurationError{Field: rt.field, Reason: fmt.Sprintf("rate must be within [0, 1], got %s", rt.value)}
		}
	}

	thresholds := []struct {
		field string
		value decimal.Decimal
	}{
		{"micro_business.turnover_ceiling", r.MicroBusiness.TurnoverCeiling},
		{"small_business.threshold", r.SmallBusiness.Threshold},
		{"property_tax.threshold_individual", r.PropertyTax.ThresholdIndividual},
		{"property_tax.threshold_family", r.PropertyTax.ThresholdFamily},
	}
	for _, th := range thresholds {
		if !th.value.IsPositive() {
			return &ConfigurationError{Field: th.field, Reason: fmt.Sprintf("threshold must be positive, got %s", th.value)}
		}
	}

	if _, err := r.PropertyTax.Threshold(); err != nil {
		return err
	}
	return nil
}
