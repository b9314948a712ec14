package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// assertDecimal fails unless got equals the decimal parsed from want.
// Shared by the calculator tests in this package.
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	expected := decimal.RequireFromString(want)
	assert.True(t, expected.Equal(got), "expected %s, got %s %v", expected, got, msgAndArgs)
}

func TestStepRecorder_FreezeIsACopy(t *testing.T) {
	rec := newStepRecorder()
	rec.Record("a", "first", "x = 1", "x = 1", decimal.NewFromInt(1), "")

	frozen := rec.Steps()
	rec.Record("b", "second", "y = 2", "y = 2", decimal.NewFromInt(2), "")

	assert.Len(t, frozen, 1, "frozen trace should not grow with later records")
	assert.Len(t, rec.Steps(), 2)
	assert.Equal(t, "a", frozen[0].ID)
}

func TestStepRecorder_EmptyTraceIsNil(t *testing.T) {
	rec := newStepRecorder()
	assert.Nil(t, rec.Steps())
}

func TestAmountFormatting(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"1200", "1,200.00"},
		{"500000", "500,000.00"},
		{"500000.01", "500,000.01"},
		{"1234567.891", "1,234,567.89"},
		{"-40000", "-40,000.00"},
	}
	for _, tc := range tests {
		got := amount(decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.want, got, "formatting %s", tc.in)
	}
}
