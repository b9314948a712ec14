package domain

import (
	"github.com/shopspring/decimal"
)

// Residency is the taxpayer's residency status for the tax year.
type Residency string

const (
	Resident    Residency = "RESIDENT"
	NonResident Residency = "NON_RESIDENT"
)

// IsValid reports whether the residency value is one of the known statuses.
func (r Residency) IsValid() bool {
	return r == Resident || r == NonResident
}

// SalaryIncome is one employment income source.
type SalaryIncome struct {
	MonthlyGross decimal.Decimal `yaml:"monthly_gross" json:"monthlyGross"`
	Months       int             `yaml:"months" json:"months"`
	// PensionRate is the employee pension contribution rate. Zero means
	// "use the rate from the active rule set" (2% by default).
	PensionRate decimal.Decimal `yaml:"pension_rate,omitempty" json:"pensionRate,omitempty"`
}

// MicroBusinessIncome is annual turnover under the micro business status.
type MicroBusinessIncome struct {
	Turnover        decimal.Decimal `yaml:"turnover" json:"turnover"`
	NoEmployees     bool            `yaml:"no_employees" json:"noEmployees"`
	ActivityAllowed bool            `yaml:"activity_allowed" json:"activityAllowed"`
}

// SmallBusinessIncome is annual turnover under the small business status.
type SmallBusinessIncome struct {
	Turnover   decimal.Decimal `yaml:"turnover" json:"turnover"`
	Registered bool            `yaml:"registered" json:"registered"`
}

// RentalIncome is one rented-out property.
type RentalIncome struct {
	MonthlyRent      decimal.Decimal `yaml:"monthly_rent" json:"monthlyRent"`
	Months           int             `yaml:"months" json:"months"`
	UseSpecialRegime bool            `yaml:"use_special_regime" json:"useSpecialRegime"`
}

// CapitalGainsIncome is one disposed asset (property, vehicle, securities).
type CapitalGainsIncome struct {
	PurchasePrice      decimal.Decimal `yaml:"purchase_price" json:"purchasePrice"`
	SalePrice          decimal.Decimal `yaml:"sale_price" json:"salePrice"`
	IsPrimaryResidence bool            `yaml:"is_primary_residence" json:"isPrimaryResidence"`
}

// DividendIncome is a single dividend receipt.
type DividendIncome struct {
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// InterestIncome is a single interest receipt.
type InterestIncome struct {
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// PropertyHolding is one property subject to annual property tax. The family
// income figure used for the exemption check lives on the Profile, not here,
// since it is shared across all holdings.
type PropertyHolding struct {
	MarketValue decimal.Decimal `yaml:"market_value" json:"marketValue"`
	// ThresholdOverride replaces the rule-set income threshold for this
	// holding when positive. Kept per-holding because the legally correct
	// figure is disputed (40,000 individual vs 65,000 family income).
	ThresholdOverride decimal.Decimal `yaml:"threshold_override,omitempty" json:"thresholdOverride,omitempty"`
}

// Profile is the root input for one calculation: the declared income sources
// of a single taxpayer for a single tax year. It is treated as immutable for
// the duration of a Calculate call.
//
// Residency is carried through to the result but does not change any rate in
// the current rule set. Filtering Georgian-source vs worldwide-source items
// for non-residents is the caller's responsibility when building the profile.
type Profile struct {
	Name      string    `yaml:"name,omitempty" json:"name,omitempty"`
	Year      int       `yaml:"year" json:"year"`
	Residency Residency `yaml:"residency" json:"residency"`

	// FamilyIncome is the annual family income used by the property tax
	// exemption check, shared by every property holding.
	FamilyIncome decimal.Decimal `yaml:"family_income,omitempty" json:"familyIncome,omitempty"`

	Salary        []SalaryIncome        `yaml:"salary,omitempty" json:"salary,omitempty"`
	MicroBusiness []MicroBusinessIncome `yaml:"micro_business,omitempty" json:"microBusiness,omitempty"`
	SmallBusiness []SmallBusinessIncome `yaml:"small_business,omitempty" json:"smallBusiness,omitempty"`
	Rental        []RentalIncome        `yaml:"rental,omitempty" json:"rental,omitempty"`
	CapitalGains  []CapitalGainsIncome  `yaml:"capital_gains,omitempty" json:"capitalGains,omitempty"`
	Dividends     []DividendIncome      `yaml:"dividends,omitempty" json:"dividends,omitempty"`
	Interest      []InterestIncome      `yaml:"interest,omitempty" json:"interest,omitempty"`
	Property      []PropertyHolding     `yaml:"property,omitempty" json:"property,omitempty"`
}
