package document

import (
	"fmt"
	"strings"
	"time"

	"billmint/internal/domain"
	"billmint/internal/money"
	"billmint/internal/words"
)

// dateLayout is the printed day-month-year format, zero-padded.
const dateLayout = "02-01-2006"

// defaultUnit is the quantity unit label printed next to each line.
const defaultUnit = "NOS"

// Builder assembles render-ready snapshots. It is the single source of
// truth for totals: amounts carried on the stored invoice are advisory
// and always recomputed here.
type Builder struct {
	seller domain.SellerProfile
}

// NewBuilder creates a Builder for a fixed seller profile.
func NewBuilder(seller domain.SellerProfile) *Builder {
	return &Builder{seller: seller}
}

// Build validates the invoice and customer and produces a Snapshot. On
// any precondition failure it returns a ValidationError enumerating every
// violated field and no snapshot at all.
func (b *Builder) Build(inv *domain.Invoice, customer *domain.Customer) (*Snapshot, error) {
	verr := &domain.ValidationError{}

	if inv == nil {
		return nil, domain.NewValidationError("invoice", "is required")
	}
	if customer == nil {
		verr.Add("customer", "a resolved customer is required")
	} else {
		validateAddress(customer.Address, verr)
	}

	if len(inv.Items) == 0 {
		verr.Add("items", "at least one line item is required")
	}
	for i, item := range inv.Items {
		if !item.Quantity.IsPositive() {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
		if item.Rate.IsNegative() {
			verr.Add(fmt.Sprintf("items[%d].rate", i), "must not be negative")
		}
	}

	if !inv.Rates().Valid() {
		verr.Add("taxRates", "CGST+SGST and IGST regimes are mutually exclusive")
	}

	if verr.HasErrors() {
		return nil, verr
	}

	rates := inv.Rates()
	subtotal, tax, total := money.Totals(inv.Items, rates)

	lines := make([]Line, 0, len(inv.Items))
	for i, item := range inv.Items {
		lines = append(lines, Line{
			SerialNo:    i + 1,
			Description: item.Description,
			HSNSAC:      item.HSNSAC,
			Quantity:    item.Quantity,
			Unit:        defaultUnit,
			Rate:        item.Rate,
			Amount:      money.LineAmount(item),
		})
	}

	roundedTotal := money.Round2(total)
	inWords, err := words.Amount(roundedTotal)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Seller:        b.seller,
		Customer:      *customer,
		InvoiceNo:     inv.InvoiceNo,
		InvoiceDate:   inv.InvoiceDate.Format(dateLayout),
		PONo:          inv.PONo,
		PODate:        formatOptionalDate(inv.PODate),
		DCNo:          inv.DCNo,
		DCDate:        formatOptionalDate(inv.DCDate),
		Lines:         lines,
		Rates:         rates,
		Subtotal:      subtotal,
		CGSTAmount:    money.ComponentAmount(subtotal, rates.CGSTPercent),
		SGSTAmount:    money.ComponentAmount(subtotal, rates.SGSTPercent),
		IGSTAmount:    money.ComponentAmount(subtotal, rates.IGSTPercent),
		TaxAmount:     tax,
		TotalAmount:   total,
		AmountInWords: inWords,
	}, nil
}

func validateAddress(addr domain.Address, verr *domain.ValidationError) {
	checks := []struct {
		field string
		value string
	}{
		{"address.street", addr.Street},
		{"address.city", addr.City},
		{"address.state", addr.State},
		{"address.postalCode", addr.PostalCode},
		{"address.country", addr.Country},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			verr.Add(c.field, "is required")
		}
	}
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
