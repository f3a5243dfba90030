// Package words converts currency amounts into their Indian-English
// phrase form, grouping by crore (10^7), lakh (10^5) and thousand rather
// than the international million/billion convention.
package words

import (
	"strings"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
)

var units = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

var teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tens = []string{"", "Ten", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// Amount renders a non-negative rupee amount as an Indian-English phrase,
// e.g. "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees and
// Seventy Eight Paise only". It is pure: identical input always yields
// identical output.
//
// Negative amounts and amounts with more than two decimal digits are a
// precondition violation, not a clamped case.
func Amount(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", domain.NewValidationError("amount", "must be non-negative")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return "", domain.NewValidationError("amount", "must have at most two decimal places")
	}

	rupees := amount.IntPart()
	paise := amount.Sub(amount.Truncate(0)).Mul(decimal.NewFromInt(100)).IntPart()

	var parts []string
	if rupees == 0 {
		parts = append(parts, "Zero", "Rupees")
	} else {
		parts = append(parts, integer(rupees), "Rupees")
	}

	if paise > 0 {
		parts = append(parts, "and", belowThousand(paise), "Paise")
	}
	parts = append(parts, "only")

	return strings.Join(parts, " "), nil
}

// integer spells any positive rupee count with Indian grouping. The crore
// count itself is grouped recursively, so 10^10 reads "One Thousand Crore"
// and the converter never runs out of range for an int64.
func integer(n int64) string {
	var parts []string
	if c := n / crore; c > 0 {
		parts = append(parts, integer(c), "Crore")
		n %= crore
	}
	if l := n / lakh; l > 0 {
		parts = append(parts, belowThousand(l), "Lakh")
		n %= lakh
	}
	if k := n / thousand; k > 0 {
		parts = append(parts, belowThousand(k), "Thousand")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

// belowThousand spells a number in [1, 999] using the hundreds/tens/units
// decomposition, with teens and round tens looked up directly.
func belowThousand(n int64) string {
	switch {
	case n < 10:
		return units[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		word := tens[n/10]
		if n%10 != 0 {
			word += " " + units[n%10]
		}
		return word
	default:
		word := units[n/100] + " Hundred"
		if n%100 != 0 {
			word += " " + belowThousand(n%100)
		}
		return word
	}
}
