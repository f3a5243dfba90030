package document

import (
	"github.com/shopspring/decimal"

	"billmint/internal/domain"
)

// Line is one presentation-ready invoice row. Amount is computed by the
// builder; the renderer never recomputes it.
type Line struct {
	SerialNo    int
	Description string
	HSNSAC      string
	Quantity    decimal.Decimal
	Unit        string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// Snapshot is a denormalized, read-only projection of an invoice, its
// resolved customer, the fixed seller profile and the recomputed totals.
// It exists only for the duration of one render and is discarded after
// the artifact is produced.
type Snapshot struct {
	Seller   domain.SellerProfile
	Customer domain.Customer

	InvoiceNo   string
	InvoiceDate string
	PONo        string
	PODate      string
	DCNo        string
	DCDate      string

	Lines []Line
	Rates domain.TaxRates

	Subtotal    decimal.Decimal
	CGSTAmount  decimal.Decimal
	SGSTAmount  decimal.Decimal
	IGSTAmount  decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal

	AmountInWords string
}
