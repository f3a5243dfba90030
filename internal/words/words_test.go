package words

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmint/internal/domain"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAmount_Zero(t *testing.T) {
	got, err := Amount(amt("0"))
	require.NoError(t, err)
	assert.Equal(t, "Zero Rupees only", got)
}

func TestAmount_ZeroRupeesWithPaise(t *testing.T) {
	got, err := Amount(amt("0.05"))
	require.NoError(t, err)
	assert.Equal(t, "Zero Rupees and Five Paise only", got)
}

func TestAmount_UnitsTensTeens(t *testing.T) {
	cases := map[string]string{
		"1":   "One Rupees only",
		"7":   "Seven Rupees only",
		"10":  "Ten Rupees only",
		"14":  "Fourteen Rupees only",
		"19":  "Nineteen Rupees only",
		"20":  "Twenty Rupees only",
		"42":  "Forty Two Rupees only",
		"90":  "Ninety Rupees only",
		"99":  "Ninety Nine Rupees only",
		"100": "One Hundred Rupees only",
		"105": "One Hundred Five Rupees only",
		"999": "Nine Hundred Ninety Nine Rupees only",
	}
	for in, want := range cases {
		got, err := Amount(amt(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestAmount_GroupBoundaries(t *testing.T) {
	cases := map[string]string{
		"1000":     "One Thousand Rupees only",
		"100000":   "One Lakh Rupees only",
		"10000000": "One Crore Rupees only",
	}
	for in, want := range cases {
		got, err := Amount(amt(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestAmount_FullIndianGrouping(t *testing.T) {
	got, err := Amount(amt("12345667.89"))
	require.NoError(t, err)
	assert.Equal(t,
		"One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Sixty Seven Rupees and Eighty Nine Paise only",
		got)
}

func TestAmount_CroreCountGroupedRecursively(t *testing.T) {
	cases := map[string]string{
		"9999999999":   "Nine Hundred Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine Rupees only",
		"10000000000":  "One Thousand Crore Rupees only",
		"123456789012": "Twelve Thousand Three Hundred Forty Five Crore Sixty Seven Lakh Eighty Nine Thousand Twelve Rupees only",
	}
	for in, want := range cases {
		got, err := Amount(amt(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestAmount_SkipsZeroGroups(t *testing.T) {
	got, err := Amount(amt("10000500"))
	require.NoError(t, err)
	assert.Equal(t, "One Crore Five Hundred Rupees only", got)
}

func TestAmount_Paise(t *testing.T) {
	got, err := Amount(amt("2360.50"))
	require.NoError(t, err)
	assert.Equal(t, "Two Thousand Three Hundred Sixty Rupees and Fifty Paise only", got)
}

func TestAmount_TrailingZeroFraction(t *testing.T) {
	got, err := Amount(amt("17970.00"))
	require.NoError(t, err)
	assert.Equal(t, "Seventeen Thousand Nine Hundred Seventy Rupees only", got)
}

func TestAmount_NegativeRejected(t *testing.T) {
	_, err := Amount(amt("-1"))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Fields[0].Field)
}

func TestAmount_TooManyDecimalsRejected(t *testing.T) {
	_, err := Amount(amt("1.005"))
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAmount_Deterministic(t *testing.T) {
	first, err := Amount(amt("98765.43"))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Amount(amt("98765.43"))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
