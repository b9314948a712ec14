// Package importer converts CSV exports of income rows into a taxpayer
// profile. Column names are matched flexibly because exported spreadsheets
// rarely agree on headers.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// header aliases, lowercased. The first matching column wins.
var columnAliases = map[string][]string{
	"income_type": {"income_type", "type", "income category", "category"},
	"amount":      {"amount", "value", "income", "revenue"},
	"months":      {"months", "month_count"},
}

// CSVImporter parses income rows into a Profile.
type CSVImporter struct{}

// NewCSVImporter creates a CSV importer.
func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

// Import reads income rows and builds a profile for the given tax year.
// Rows it cannot map are reported in the returned notes, not as an error, so
// one odd row never discards an otherwise valid file.
func (ci *CSVImporter) Import(r io.Reader, year int) (*domain.Profile, []string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV input: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = detectDelimiter(text)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("CSV file is empty or has no data rows")
	}

	cols, err := resolveColumns(records[0])
	if err != nil {
		return nil, nil, err
	}

	profile := &domain.Profile{Year: year, Residency: domain.Resident}
	var notes []string

	for i, row := range records[1:] {
		line := i + 2
		incomeType := strings.ToLower(strings.TrimSpace(cell(row, cols["income_type"])))
		amountText := strings.TrimSpace(cell(row, cols["amount"]))
		if incomeType == "" && amountText == "" {
			continue
		}

		value, err := parseAmount(amountText)
		if err != nil {
			notes = append(notes, fmt.Sprintf("line %d: unreadable amount %q, row skipped", line, amountText))
			continue
		}
		months := parseMonths(cell(row, cols["months"]))

		switch incomeType {
		case "salary":
			profile.Salary = append(profile.Salary, domain.SalaryIncome{MonthlyGross: value, Months: months})
		case "rental", "rent":
			profile.Rental = append(profile.Rental, domain.RentalIncome{MonthlyRent: value, Months: months, UseSpecialRegime: true})
		case "dividends", "dividend":
			profile.Dividends = append(profile.Dividends, domain.DividendIncome{Amount: value})
		case "interest":
			profile.Interest = append(profile.Interest, domain.InterestIncome{Amount: value})
		case "micro_business", "micro business", "micro":
			profile.MicroBusiness = append(profile.MicroBusiness, domain.MicroBusinessIncome{Turnover: value, NoEmployees: true, ActivityAllowed: true})
		case "small_business", "small business", "small":
			profile.SmallBusiness = append(profile.SmallBusiness, domain.SmallBusinessIncome{Turnover: value, Registered: true})
		default:
			notes = append(notes, fmt.Sprintf("line %d: unknown income type %q, row skipped", line, incomeType))
		}
	}

	return profile, notes, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	cols := map[string]int{}
	for key, aliases := range columnAliases {
		cols[key] = -1
		for _, alias := range aliases {
			for i, h := range lowered {
				if h == alias {
					cols[key] = i
					break
				}
			}
			if cols[key] >= 0 {
				break
			}
		}
	}
	if cols["income_type"] < 0 || cols["amount"] < 0 {
		return nil, fmt.Errorf("CSV is missing an income type or amount column (got headers: %s)", strings.Join(header, ", "))
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(s)
}

// parseMonths defaults to a full year when the column is absent or unreadable.
func parseMonths(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 12
	}
	months, err := strconv.Atoi(s)
	if err != nil || months <= 0 {
		return 12
	}
	return months
}

// detectDelimiter prefers a semicolon when the header line carries more of
// them than commas (common in Georgian locale exports).
func detectDelimiter(text string) rune {
	line, _, _ := strings.Cut(text, "\n")
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
