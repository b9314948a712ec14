package store

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// ExampleInfo describes one built-in demonstration profile.
type ExampleInfo struct {
	Name        string
	Description string
}

var examples = map[string]ExampleInfo{
	"typical_employee":         {"Typical Employee", "Standard employee with salary and some rental income"},
	"small_business_owner":     {"Small Business Owner", "Entrepreneur with small business and part-time salary"},
	"micro_business_eligible":  {"Micro Business (Eligible)", "Micro business owner eligible for 0% tax"},
	"property_investor":        {"Property Investor", "Multiple properties with rental income and capital gains"},
	"high_income_professional": {"High Income Professional", "High salary with multiple income sources"},
}

// ExampleNames returns the built-in example profile keys, sorted.
func ExampleNames() []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExampleDescription returns the human-readable summary for an example key.
func ExampleDescription(name string) (ExampleInfo, bool) {
	info, ok := examples[name]
	return info, ok
}

// ExampleProfile builds one of the built-in demonstration profiles.
func ExampleProfile(name string) (*domain.Profile, error) {
	switch name {
	case "typical_employee":
		return &domain.Profile{
			Name:      name,
			Year:      2025,
			Residency: domain.Resident,
			Salary: []domain.SalaryIncome{
				{MonthlyGross: decimal.NewFromInt(5000), Months: 12},
			},
			Rental: []domain.RentalIncome{
				{MonthlyRent: decimal.NewFromInt(1200), Months: 12, UseSpecialRegime: true},
			},
		}, nil
	case "small_business_owner":
		return &domain.Profile{
			Name:         name,
			Year:         2025,
			Residency:    domain.Resident,
			FamilyIncome: decimal.NewFromInt(80000),
			Salary: []domain.SalaryIncome{
				{MonthlyGross: decimal.NewFromInt(3000), Months: 6},
			},
			SmallBusiness: []domain.SmallBusinessIncome{
				{Turnover: decimal.NewFromInt(600000), Registered: true},
			},
			Property: []domain.PropertyHolding{
				{MarketValue: decimal.NewFromInt(150000)},
				{MarketValue: decimal.NewFromInt(100000)},
			},
		}, nil
	case "micro_business_eligible":
		return &domain.Profile{
			Name:      name,
			Year:      2025,
			Residency: domain.Resident,
			MicroBusiness: []domain.MicroBusinessIncome{
				{Turnover: decimal.NewFromInt(30000), NoEmployees: true, ActivityAllowed: true},
			},
			Dividends: []domain.DividendIncome{
				{Amount: decimal.NewFromInt(5000)},
			},
		}, nil
	case "property_investor":
		return &domain.Profile{
			Name:         name,
			Year:         2025,
			Residency:    domain.Resident,
			FamilyIncome: decimal.NewFromInt(90000),
			Rental: []domain.RentalIncome{
				{MonthlyRent: decimal.NewFromInt(1000), Months: 12, UseSpecialRegime: true},
				{MonthlyRent: decimal.NewFromInt(800), Months: 10, UseSpecialRegime: true},
			},
			CapitalGains: []domain.CapitalGainsIncome{
				{PurchasePrice: decimal.NewFromInt(100000), SalePrice: decimal.NewFromInt(120000)},
				{PurchasePrice: decimal.NewFromInt(80000), SalePrice: decimal.NewFromInt(95000)},
			},
			Property: []domain.PropertyHolding{
				{MarketValue: decimal.NewFromInt(120000)},
				{MarketValue: decimal.NewFromInt(100000)},
				{MarketValue: decimal.NewFromInt(80000)},
			},
		}, nil
	case "high_income_professional":
		return &domain.Profile{
			Name:         name,
			Year:         2025,
			Residency:    domain.Resident,
			FamilyIncome: decimal.NewFromInt(150000),
			Salary: []domain.SalaryIncome{
				{MonthlyGross: decimal.NewFromInt(10000), Months: 12},
			},
			Dividends: []domain.DividendIncome{
				{Amount: decimal.NewFromInt(25000)},
			},
			Interest: []domain.InterestIncome{
				{Amount: decimal.NewFromInt(5000)},
			},
			Rental: []domain.RentalIncome{
				{MonthlyRent: decimal.NewFromInt(2000), Months: 12, UseSpecialRegime: true},
			},
			Property: []domain.PropertyHolding{
				{MarketValue: decimal.NewFromInt(200000)},
				{MarketValue: decimal.NewFromInt(150000)},
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown example profile %q", name)
	}
}
