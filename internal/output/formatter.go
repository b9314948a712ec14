package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// ReportGenerator renders a calculation result in the supported formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport writes the result to w in the requested format.
func (rg *ReportGenerator) GenerateReport(w io.Writer, result *domain.CalculationResult, format string) error {
	switch format {
	case "console":
		return rg.GenerateConsoleReport(w, result)
	case "json":
		data, err := JSONFormatter{Pretty: true}.Format(result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "csv":
		data, err := CSVSummarizer{}.Format(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport writes the full calculation trace as a readable
// console report.
func (rg *ReportGenerator) GenerateConsoleReport(w io.Writer, result *domain.CalculationResult) error {
	line := strings.Repeat("=", 78)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "GEORGIAN PERSONAL INCOME TAX CALCULATION - %d (%s)\n", result.Year, result.Residency)
	fmt.Fprintf(w, "Rules version: %s\n", result.RulesVersion)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)

	for _, regime := range result.ByRegime {
		fmt.Fprintf(w, "REGIME: %s\n", strings.ToUpper(regime.RegimeID))
		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, step := range regime.Steps {
			fmt.Fprintf(w, "  %s\n", step.Description)
			fmt.Fprintf(w, "    %s\n", step.Formula)
			fmt.Fprintf(w, "    %s = %s\n", step.Values, FormatCurrency(step.Result))
			if step.LegalRef != "" {
				fmt.Fprintf(w, "    ref: %s\n", step.LegalRef)
			}
		}
		for _, warning := range regime.Warnings {
			fmt.Fprintf(w, "  WARNING: %s\n", warning)
		}
		fmt.Fprintf(w, "  Regime tax due: %s\n", FormatCurrency(regime.Tax))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Total income:   %s\n", FormatCurrency(result.TotalIncome))
	fmt.Fprintf(w, "Total tax due:  %s\n", FormatCurrency(result.TotalTax))
	fmt.Fprintf(w, "Effective rate: %s%%\n", result.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	fmt.Fprintln(w, line)
	return nil
}

// JSONFormatter renders the result as the JSON wire contract.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates the JSON body for a calculation result.
func (jf JSONFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// CSVSummarizer implements the summary CSV output (one row per regime plus a
// totals row).
type CSVSummarizer struct{}

// Format generates the CSV summary for a calculation result.
func (c CSVSummarizer) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "TaxDue", "Steps", "Warnings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, regime := range result.ByRegime {
		row := []string{
			regime.RegimeID,
			regime.Tax.StringFixed(2),
			fmt.Sprintf("%d", len(regime.Steps)),
			fmt.Sprintf("%d", len(regime.Warnings)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	totals := []string{"total", result.TotalTax.StringFixed(2), "", ""}
	if err := w.Write(totals); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// FormatCurrency renders a decimal amount as GEL with thousands separators.
func FormatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String() + "." + frac + " GEL"
}
