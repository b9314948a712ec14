package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVImporter_BasicRows(t *testing.T) {
	input := `income_type,amount,months
salary,5000,12
rental,1200,12
dividends,15000,
interest,3000,
`

	profile, notes, err := NewCSVImporter().Import(strings.NewReader(input), 2025)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.Equal(t, 2025, profile.Year)
	require.Len(t, profile.Salary, 1)
	assert.True(t, profile.Salary[0].MonthlyGross.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 12, profile.Salary[0].Months)
	require.Len(t, profile.Rental, 1)
	assert.True(t, profile.Rental[0].UseSpecialRegime)
	require.Len(t, profile.Dividends, 1)
	require.Len(t, profile.Interest, 1)
}

func TestCSVImporter_FlexibleHeaders(t *testing.T) {
	input := `Type,Value
salary,3000
small_business,600000
`

	profile, notes, err := NewCSVImporter().Import(strings.NewReader(input), 2025)
	require.NoError(t, err)
	assert.Empty(t, notes)

	require.Len(t, profile.Salary, 1)
	assert.Equal(t, 12, profile.Salary[0].Months, "missing months column defaults to a full year")
	require.Len(t, profile.SmallBusiness, 1)
	assert.True(t, profile.SmallBusiness[0].Registered)
}

func TestCSVImporter_SemicolonDelimiter(t *testing.T) {
	input := "income_type;amount;months\nsalary;4000;6\n"

	profile, _, err := NewCSVImporter().Import(strings.NewReader(input), 2025)
	require.NoError(t, err)

	require.Len(t, profile.Salary, 1)
	assert.Equal(t, 6, profile.Salary[0].Months)
}

func TestCSVImporter_GroupedAmounts(t *testing.T) {
	input := "income_type,amount\nmicro_business,\"150,000.50\"\n"

	profile, _, err := NewCSVImporter().Import(strings.NewReader(input), 2025)
	require.NoError(t, err)

	require.Len(t, profile.MicroBusiness, 1)
	assert.True(t, profile.MicroBusiness[0].Turnover.Equal(decimal.RequireFromString("150000.50")))
}

func TestCSVImporter_UnknownTypeNoted(t *testing.T) {
	input := "income_type,amount\nlottery,9000\nsalary,1000\n"

	profile, notes, err := NewCSVImporter().Import(strings.NewReader(input), 2025)
	require.NoError(t, err)

	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "lottery")
	assert.Len(t, profile.Salary, 1, "one odd row never discards the rest")
}

func TestCSVImporter_BadAmountNoted(t *testing.T) {
	input := "income_type,amount\nsalary,lots\n"

	profile, notes, err := NewCSVImporter().Import(strings.NewReader(input), 2025)
	require.NoError(t, err)

	assert.Empty(t, profile.Salary)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "unreadable amount")
}

func TestCSVImporter_MissingColumns(t *testing.T) {
	input := "foo,bar\n1,2\n"

	_, _, err := NewCSVImporter().Import(strings.NewReader(input), 2025)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing an income type or amount column")
}

func TestCSVImporter_EmptyFile(t *testing.T) {
	_, _, err := NewCSVImporter().Import(strings.NewReader("income_type,amount\n"), 2025)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}
