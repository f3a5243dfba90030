package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"billmint/internal/domain"
)

func item(qty, rate string) domain.LineItem {
	return domain.LineItem{
		Quantity: decimal.RequireFromString(qty),
		Rate:     decimal.RequireFromString(rate),
	}
}

func TestLineAmount(t *testing.T) {
	assert.True(t, LineAmount(item("2", "500")).Equal(decimal.NewFromInt(1000)))
	assert.True(t, LineAmount(item("3", "0.10")).Equal(decimal.RequireFromString("0.30")))
	assert.True(t, LineAmount(item("1", "0")).IsZero())
}

func TestSubtotal_OrderIndependent(t *testing.T) {
	a := domain.LineItems{item("2", "500"), item("1", "1000"), item("3", "99.99")}
	b := domain.LineItems{a[2], a[0], a[1]}

	assert.True(t, Subtotal(a).Equal(Subtotal(b)))
	assert.Equal(t, "2299.97", Format2(Subtotal(a)))
}

func TestSubtotal_Empty(t *testing.T) {
	assert.True(t, Subtotal(nil).IsZero())
}

func TestTotals_Scenario(t *testing.T) {
	// items=[{qty:2,rate:500},{qty:1,rate:1000}], rates={cgst:9,sgst:9}
	items := domain.LineItems{item("2", "500"), item("1", "1000")}
	rates := domain.TaxRates{
		CGSTPercent: decimal.NewFromInt(9),
		SGSTPercent: decimal.NewFromInt(9),
	}

	subtotal, tax, total := Totals(items, rates)
	assert.Equal(t, "2000.00", Format2(subtotal))
	assert.Equal(t, "360.00", Format2(tax))
	assert.Equal(t, "2360.00", Format2(total))
	assert.True(t, total.Equal(subtotal.Add(tax)))
}

func TestTotals_NoBinaryDrift(t *testing.T) {
	// 0.1 + 0.2 style values stay exact in decimal space.
	items := domain.LineItems{item("1", "0.1"), item("1", "0.2")}
	subtotal, _, _ := Totals(items, domain.TaxRates{})
	assert.Equal(t, "0.30", Format2(subtotal))
}

func TestRound2_HalfUp(t *testing.T) {
	assert.Equal(t, "2.35", Format2(Round2(decimal.RequireFromString("2.345"))))
	assert.Equal(t, "2.34", Format2(Round2(decimal.RequireFromString("2.344"))))
}

func TestTaxAmount_AggregateBeforeRounding(t *testing.T) {
	// Three lines of 33.333 each: tax on the aggregate, rounded once.
	items := domain.LineItems{item("1", "33.333"), item("1", "33.333"), item("1", "33.333")}
	rates := domain.TaxRates{IGSTPercent: decimal.NewFromInt(18)}

	subtotal, tax, _ := Totals(items, rates)
	assert.Equal(t, "99.999", subtotal.String())
	assert.Equal(t, "18.00", Format2(Round2(tax)))
}
