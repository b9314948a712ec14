package calculation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nkharadze/taxge/internal/domain"
)

// stepRecorder accumulates the ordered calculation trace for one regime.
// Calculators append via Record and hand the frozen sequence to the
// RegimeResult via Steps; the internal slice is never shared, so a finished
// trace cannot be mutated by a later regime.
type stepRecorder struct {
	steps []domain.CalculationStep
}

func newStepRecorder() *stepRecorder {
	return &stepRecorder{}
}

// Record appends one step to the trace.
func (sr *stepRecorder) Record(id, description, formula, values string, result decimal.Decimal, legalRef string) {
	sr.steps = append(sr.steps, domain.CalculationStep{
		ID:          id,
		Description: description,
		Formula:     formula,
		Values:      values,
		Result:      result,
		LegalRef:    legalRef,
	})
}

// Steps freezes the trace: the returned slice is a copy, so the recorder can
// be discarded and the result stays immutable.
func (sr *stepRecorder) Steps() []domain.CalculationStep {
	if len(sr.steps) == 0 {
		return nil
	}
	frozen := make([]domain.CalculationStep, len(sr.steps))
	copy(frozen, sr.steps)
	return frozen
}

// amount renders a decimal for the substituted-values text of a step:
// fixed two decimals with thousands separators, e.g. "5,000.00".
func amount(d decimal.Decimal) string {
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
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
