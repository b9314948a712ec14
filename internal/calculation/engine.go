package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// Engine aggregates the per-regime calculators into one pure function from a
// profile to a calculation result. It holds no state across calls and does no
// I/O, so a single Engine is safe to share between concurrent callers.
type Engine struct {
	Rules  domain.TaxRules
	Logger Logger

	salary        *SalaryCalculator
	microBusiness *MicroBusinessCalculator
	smallBusiness *SmallBusinessCalculator
	rental        *RentalCalculator
	capitalGains  *CapitalGainsCalculator
	dividends     *DividendsCalculator
	interest      *InterestCalculator
	propertyTax   *PropertyTaxCalculator
}

// NewEngine creates an engine with the default rule set.
func NewEngine() (*Engine, error) {
	return NewEngineWithRules(domain.DefaultTaxRules())
}

// NewEngineWithRules creates an engine with an explicit rule set. The rules
// are validated up front; a bad rule set is a ConfigurationError, never a
// partially wrong result.
func NewEngineWithRules(rules domain.TaxRules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	propertyTax, err := NewPropertyTaxCalculator(rules.PropertyTax)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Rules:         rules,
		Logger:        NopLogger{},
		salary:        NewSalaryCalculator(rules.Salary),
		microBusiness: NewMicroBusinessCalculator(rules.MicroBusiness),
		smallBusiness: NewSmallBusinessCalculator(rules.SmallBusiness),
		rental:        NewRentalCalculator(rules.Rental),
		capitalGains:  NewCapitalGainsCalculator(rules.CapitalGains),
		dividends:     NewDividendsCalculator(rules.Withholding),
		interest:      NewInterestCalculator(rules.Withholding),
		propertyTax:   propertyTax,
	}, nil
}

// SetLogger installs a custom logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Calculate runs every regime with at least one income item, in fixed
// declaration order, and aggregates totals. The order only affects trace
// presentation; regimes share no state.
func (e *Engine) Calculate(profile *domain.Profile) (*domain.CalculationResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if profile.Residency != "" && !profile.Residency.IsValid() {
		return nil, fmt.Errorf("unknown residency status %q", profile.Residency)
	}
	residency := profile.Residency
	if residency == "" {
		residency = domain.Resident
	}

	var results []domain.RegimeResult
	if len(profile.Salary) > 0 {
		results = append(results, e.salary.Calculate(profile.Salary))
	}
	if len(profile.MicroBusiness) > 0 {
		results = append(results, e.microBusiness.Calculate(profile.MicroBusiness))
	}
	if len(profile.SmallBusiness) > 0 {
		results = append(results, e.smallBusiness.Calculate(profile.SmallBusiness))
	}
	if len(profile.Rental) > 0 {
		results = append(results, e.rental.Calculate(profile.Rental))
	}
	if len(profile.CapitalGains) > 0 {
		results = append(results, e.capitalGains.Calculate(profile.CapitalGains))
	}
	if len(profile.Dividends) > 0 {
		results = append(results, e.dividends.Calculate(profile.Dividends))
	}
	if len(profile.Interest) > 0 {
		results = append(results, e.interest.Calculate(profile.Interest))
	}
	if len(profile.Property) > 0 {
		results = append(results, e.propertyTax.Calculate(profile.Property, profile.FamilyIncome))
	}

	totalTax := decimal.Zero
	totalIncome := decimal.Zero
	for _, rr := range results {
		totalTax = totalTax.Add(rr.Tax)
		totalIncome = totalIncome.Add(rr.Income)
		if len(rr.Warnings) > 0 {
			e.Logger.Warnf("regime %s produced %d warning(s)", rr.RegimeID, len(rr.Warnings))
		}
	}

	// Effective rate is left unclamped; contrived inputs where tax exceeds
	// income simply report a rate above 1.
	effectiveRate := decimal.Zero
	if totalIncome.IsPositive() {
		effectiveRate = totalTax.Div(totalIncome)
	}

	e.Logger.Debugf("calculated %d regime(s): total tax %s on income %s", len(results), totalTax, totalIncome)

	return &domain.CalculationResult{
		Year:          profile.Year,
		RulesVersion:  e.Rules.Version,
		Residency:     residency,
		TotalTax:      totalTax,
		TotalIncome:   totalIncome,
		EffectiveRate: effectiveRate,
		ByRegime:      results,
	}, nil
}
