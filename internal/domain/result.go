package domain

import (
	"github.com/shopspring/decimal"
)

// Regime identifiers, in the fixed evaluation order used by the engine.
const (
	RegimeSalary        = "salary"
	RegimeMicroBusiness = "micro_business"
	RegimeSmallBusiness = "small_business"
	RegimeRental        = "rental"
	RegimeCapitalGains  = "capital_gains"
	RegimeDividends     = "dividends"
	RegimeInterest      = "interest"
	RegimePropertyTax   = "property_tax"
)

// CalculationStep is one recorded arithmetic operation in a regime's
// derivation: the symbolic formula, the substituted values, and the numeric
// result. Steps are immutable once recorded and ordered within their regime.
type CalculationStep struct {
	ID          string          `yaml:"id" json:"id"`
	Description string          `yaml:"description" json:"description"`
	Formula     string          `yaml:"formula" json:"formula"`
	Values      string          `yaml:"values" json:"values"`
	Result      decimal.Decimal `yaml:"result" json:"result"`
	LegalRef    string          `yaml:"legal_ref,omitempty" json:"legalRef,omitempty"`
}

// RegimeResult is the outcome for one tax regime: tax due, the audit trail of
// steps that produced it, and any eligibility advisories. Tax is never
// negative. Income is the regime's gross base figure as it contributes to the
// overall total income; it is bookkeeping for the aggregator, not part of the
// wire contract.
type RegimeResult struct {
	RegimeID string          `yaml:"regime_id" json:"regimeId"`
	Tax      decimal.Decimal `yaml:"tax" json:"tax"`
	Income   decimal.Decimal `yaml:"income" json:"-"`
	Steps    []CalculationStep `yaml:"steps" json:"steps"`
	Warnings []string          `yaml:"warnings,omitempty" json:"warnings"`
}

// CalculationResult is the complete outcome of one engine invocation. It is a
// derived snapshot: every figure follows from the regime results and it holds
// no state of its own.
type CalculationResult struct {
	Year          int             `yaml:"year" json:"year"`
	RulesVersion  string          `yaml:"rules_version" json:"rulesVersion"`
	Residency     Residency       `yaml:"residency" json:"residency"`
	TotalTax      decimal.Decimal `yaml:"total_tax" json:"totalTax"`
	TotalIncome   decimal.Decimal `yaml:"total_income" json:"totalIncome"`
	EffectiveRate decimal.Decimal `yaml:"effective_rate" json:"effectiveRate"`
	ByRegime      []RegimeResult  `yaml:"by_regime" json:"byRegime"`
}

// Warnings collects every regime warning in evaluation order.
func (cr *CalculationResult) Warnings() []string {
	var all []string
	for _, rr := range cr.ByRegime {
		all = append(all, rr.Warnings...)
	}
	return all
}

// Regime returns the result for the given regime id, or nil when the regime
// produced no result (no income items of that type).
func (cr *CalculationResult) Regime(id string) *RegimeResult {
	for i := range cr.ByRegime {
		if cr.ByRegime[i].RegimeID == id {
			return &cr.ByRegime[i]
		}
	}
	return nil
}
