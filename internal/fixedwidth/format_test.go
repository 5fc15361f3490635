package fixedwidth_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billingfiles/internal/fixedwidth"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExternalAmount(t *testing.T) {
	type testCase struct {
		name  string
		width int
		value string
		want  string
	}

	tests := []testCase{
		{name: "HalfUpBeforeShift", width: 15, value: "1.235", want: "+00000000000124"},
		{name: "FourteenWide", width: 14, value: "1.235", want: "+0000000000124"},
		{name: "Negative", width: 14, value: "-1.2", want: "-0000000000120"},
		{name: "NegativeHalfUpAwayFromZero", width: 14, value: "-1.235", want: "-0000000000124"},
		{name: "Zero", width: 6, value: "0", want: "+00000"},
		{name: "RoundsDown", width: 6, value: "12.344", want: "+01234"},
		{name: "NegativeRoundsToZero", width: 15, value: "-0.001", want: "+00000000000000"},
		{name: "NegativeHalfCentRoundsAway", width: 6, value: "-0.005", want: "-00001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fixedwidth.ExternalAmount(tt.width)(dec(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, tt.width)
		})
	}
}

func TestExternalAmount_Overflow(t *testing.T) {
	_, err := fixedwidth.ExternalAmount(4)(dec("10.00"))
	require.ErrorIs(t, err, fixedwidth.ErrOverflow)
}

func TestInternalAmount(t *testing.T) {
	type testCase struct {
		name    string
		pattern string
		value   string
		want    string
	}

	tests := []testCase{
		{name: "DefaultWhole", value: "50", want: "50.00"},
		{name: "DefaultNegative", value: "-3.5", want: "-3.50"},
		{name: "DefaultBelowOne", value: "0.5", want: ".50"},
		{name: "DefaultRoundsHalfEven", value: "2.345", want: "2.34"},
		{name: "DefaultNegativeRoundsToZero", value: "-0.001", want: ".00"},
		{name: "DefaultNegativeHalfCentToEven", value: "-0.005", want: ".00"},
		{name: "ImplicitNegativeRoundsToZero", pattern: "0.00", value: "-0.004", want: "0.00"},
		{name: "ExplicitDefault", pattern: fixedwidth.DefaultInternalPattern, value: "1234.5", want: "1234.50"},
		{name: "Grouping", pattern: "#,##0.00", value: "1234567.891", want: "1,234,567.89"},
		{name: "GroupingSmall", pattern: "#,##0.00", value: "0.1", want: "0.10"},
		{name: "OptionalFraction", pattern: "0.0#", value: "7.5", want: "7.5"},
		{name: "ImplicitNegative", pattern: "0.000", value: "-1", want: "-1.000"},
		{name: "NegativeAffixes", pattern: "0.00;(0.00)", value: "-12", want: "(12.00)"},
		{name: "Integer", pattern: "#0", value: "42.6", want: "43"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := fixedwidth.InternalAmount(tt.pattern)
			require.NoError(t, err)

			got, err := format(dec(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInternalAmount_InvalidPattern(t *testing.T) {
	for _, pattern := range []string{"abc", "#.0#0", "#,.00"} {
		_, err := fixedwidth.InternalAmount(pattern)
		assert.Error(t, err, pattern)
	}
}
