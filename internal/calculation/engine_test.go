package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkharadze/taxge/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine()
	require.NoError(t, err)
	return engine
}

// documentedProfile is the worked example from the product documentation:
// salary 5,000/month, dividends 15,000, interest 3,000, rental 1,200/month
// under the 5% regime, and five asset disposals of which the last is an
// exempt primary residence.
func documentedProfile() *domain.Profile {
	return &domain.Profile{
		Year:      2025,
		Residency: domain.Resident,
		Salary: []domain.SalaryIncome{
			{MonthlyGross: decimal.NewFromInt(5000), Months: 12},
		},
		Dividends: []domain.DividendIncome{
			{Amount: decimal.NewFromInt(15000)},
		},
		Interest: []domain.InterestIncome{
			{Amount: decimal.NewFromInt(3000)},
		},
		Rental: []domain.RentalIncome{
			{MonthlyRent: decimal.NewFromInt(1200), Months: 12, UseSpecialRegime: true},
		},
		CapitalGains: []domain.CapitalGainsIncome{
			{PurchasePrice: decimal.NewFromInt(100000), SalePrice: decimal.NewFromInt(105000)},
			{PurchasePrice: decimal.NewFromInt(50000), SalePrice: decimal.NewFromInt(53000)},
			{PurchasePrice: decimal.NewFromInt(200000), SalePrice: decimal.NewFromInt(240000)},
			{PurchasePrice: decimal.NewFromInt(100000), SalePrice: decimal.NewFromInt(130000)},
			{PurchasePrice: decimal.NewFromInt(150000), SalePrice: decimal.NewFromInt(200000), IsPrimaryResidence: true},
		},
	}
}

func TestEngine_DocumentedScenario(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(documentedProfile())
	require.NoError(t, err)

	assertDecimal(t, "17520", result.TotalTax)
	assertDecimal(t, "220400", result.TotalIncome)

	expectedRate := decimal.RequireFromString("0.0795")
	assert.True(t, result.EffectiveRate.Sub(expectedRate).Abs().LessThan(decimal.RequireFromString("0.0001")),
		"effective rate should be about 7.95%%, got %s", result.EffectiveRate)

	require.Len(t, result.ByRegime, 5)
	assertDecimal(t, "12000", result.Regime(domain.RegimeSalary).Tax)
	assertDecimal(t, "720", result.Regime(domain.RegimeRental).Tax)
	assertDecimal(t, "3900", result.Regime(domain.RegimeCapitalGains).Tax, "250+150+2,000+1,500+0")
	assertDecimal(t, "750", result.Regime(domain.RegimeDividends).Tax)
	assertDecimal(t, "150", result.Regime(domain.RegimeInterest).Tax)
}

func TestEngine_RegimeEvaluationOrderIsFixed(t *testing.T) {
	engine := newTestEngine(t)

	profile := documentedProfile()
	profile.MicroBusiness = []domain.MicroBusinessIncome{
		{Turnover: decimal.NewFromInt(10000), NoEmployees: true, ActivityAllowed: true},
	}
	profile.Property = []domain.PropertyHolding{{MarketValue: decimal.NewFromInt(100000)}}

	result, err := engine.Calculate(profile)
	require.NoError(t, err)

	var order []string
	for _, rr := range result.ByRegime {
		order = append(order, rr.RegimeID)
	}
	assert.Equal(t, []string{
		domain.RegimeSalary,
		domain.RegimeMicroBusiness,
		domain.RegimeRental,
		domain.RegimeCapitalGains,
		domain.RegimeDividends,
		domain.RegimeInterest,
		domain.RegimePropertyTax,
	}, order)
}

func TestEngine_Additivity(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(documentedProfile())
	require.NoError(t, err)

	sum := decimal.Zero
	for _, rr := range result.ByRegime {
		assert.False(t, rr.Tax.IsNegative(), "regime %s tax must never be negative", rr.RegimeID)
		sum = sum.Add(rr.Tax)
	}
	assert.True(t, result.TotalTax.Equal(sum), "total tax must equal the exact sum of regime taxes, no rounding drift")
}

func TestEngine_Idempotence(t *testing.T) {
	engine := newTestEngine(t)
	profile := documentedProfile()

	first, err := engine.Calculate(profile)
	require.NoError(t, err)
	second, err := engine.Calculate(profile)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical profile must yield an identical result")
}

func TestEngine_EmptyRegimesAreAbsent(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(&domain.Profile{
		Year:      2025,
		Residency: domain.Resident,
		Salary: []domain.SalaryIncome{
			{MonthlyGross: decimal.NewFromInt(1000), Months: 12},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.ByRegime, 1, "regimes without income items do not appear at all")
	assert.Nil(t, result.Regime(domain.RegimeRental))
}

func TestEngine_EmptyProfile(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(&domain.Profile{Year: 2025, Residency: domain.Resident})
	require.NoError(t, err)

	assert.Empty(t, result.ByRegime)
	assertDecimal(t, "0", result.TotalTax)
	assertDecimal(t, "0", result.TotalIncome)
	assertDecimal(t, "0", result.EffectiveRate, "zero income reports a zero rate, not a division fault")
}

func TestEngine_ZeroIncomeWithTaxDoesNotDivide(t *testing.T) {
	engine := newTestEngine(t)

	// Property tax due with no income regimes at all: totalIncome is zero
	// while totalTax is not.
	result, err := engine.Calculate(&domain.Profile{
		Year:         2025,
		Residency:    domain.Resident,
		FamilyIncome: decimal.NewFromInt(100000),
		Property:     []domain.PropertyHolding{{MarketValue: decimal.NewFromInt(200000)}},
	})
	require.NoError(t, err)

	assertDecimal(t, "2000", result.TotalTax)
	assertDecimal(t, "0", result.EffectiveRate)
}

func TestEngine_NilProfile(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(nil)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestEngine_UnknownResidency(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Calculate(&domain.Profile{Year: 2025, Residency: "DUAL"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "residency")
}

func TestEngine_DefaultsResidencyToResident(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(&domain.Profile{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, domain.Resident, result.Residency)
}

func TestEngine_BadRulesRejectedAtConstruction(t *testing.T) {
	rules := domain.DefaultTaxRules()
	rules.SmallBusiness.Threshold = decimal.Zero

	engine, err := NewEngineWithRules(rules)

	require.Error(t, err)
	assert.Nil(t, engine)
	var confErr *domain.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "small_business.threshold", confErr.Field)
}

func TestEngine_RulesVersionCarriedIntoResult(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(&domain.Profile{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, "2025.01", result.RulesVersion)
}

func TestEngine_OneBadItemDoesNotBlockOtherRegimes(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(&domain.Profile{
		Year:      2025,
		Residency: domain.Resident,
		Rental: []domain.RentalIncome{
			{MonthlyRent: decimal.NewFromInt(-500), Months: 12},
		},
		Salary: []domain.SalaryIncome{
			{MonthlyGross: decimal.NewFromInt(5000), Months: 12},
		},
	})
	require.NoError(t, err)

	assertDecimal(t, "12000", result.Regime(domain.RegimeSalary).Tax, "bad rental entry must not block salary")
	rental := result.Regime(domain.RegimeRental)
	require.NotNil(t, rental)
	assertDecimal(t, "0", rental.Tax)
	assert.NotEmpty(t, rental.Warnings)
}
