package money

import (
	"github.com/shopspring/decimal"

	"billmint/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// LineAmount returns quantity * rate for a single line, unrounded.
func LineAmount(item domain.LineItem) decimal.Decimal {
	return item.Quantity.Mul(item.Rate)
}

// Subtotal sums the line amounts of all items, unrounded. An empty list
// yields zero; whether that is acceptable is the caller's decision.
func Subtotal(items domain.LineItems) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineAmount(item))
	}
	return sum
}

// TaxAmount returns subtotal * (cgst+sgst+igst)/100, unrounded.
func TaxAmount(subtotal decimal.Decimal, rates domain.TaxRates) decimal.Decimal {
	return subtotal.Mul(rates.TotalPercent()).Div(hundred)
}

// ComponentAmount returns subtotal * percent/100 for one tax component.
func ComponentAmount(subtotal, percent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(percent).Div(hundred)
}

// Totals computes subtotal, tax amount and grand total in one pass.
// Aggregation happens before any rounding so rounding error never compounds.
func Totals(items domain.LineItems, rates domain.TaxRates) (subtotal, tax, total decimal.Decimal) {
	subtotal = Subtotal(items)
	tax = TaxAmount(subtotal, rates)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

// Round2 rounds half-up to two decimal places. Applied once, at the
// display and words-conversion boundary.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format2 renders an amount with exactly two decimal places.
func Format2(d decimal.Decimal) string {
	return d.StringFixed(2)
}
