package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Address is a customer's postal address. State is the sole input to
// tax-regime resolution.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Value implements driver.Valuer so Address is stored as a JSONB column.
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for reading Address back from JSONB.
func (a *Address) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = Address{}
		return nil
	default:
		return fmt.Errorf("address: cannot scan %T", src)
	}
}

// Customer represents a billable party.
type Customer struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CustomerID   string    `db:"customer_id" json:"customerId"`
	CustomerName string    `db:"customer_name" json:"customerName"`
	GSTNumber    string    `db:"gst_number" json:"gstNumber"`
	Email        string    `db:"email" json:"email"`
	PhoneNumber  string    `db:"phone_number" json:"phoneNumber"`
	Address      Address   `db:"address" json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is a single invoice line. Amount is derived (quantity * rate)
// and never stored.
type LineItem struct {
	Description string          `json:"description"`
	HSNSAC      string          `json:"hsnSac"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// LineItems is an ordered list of invoice lines, stored as a JSONB array.
// Order is significant and preserved as entered.
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage.
func (l LineItems) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for reading LineItems back from JSONB.
func (l *LineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("line items: cannot scan %T", src)
	}
}

// TaxRates holds the three GST component percentages. In a well-formed
// invoice either CGST+SGST or IGST is nonzero, never both regimes at once.
type TaxRates struct {
	CGSTPercent decimal.Decimal `json:"cgstRate"`
	SGSTPercent decimal.Decimal `json:"sgstRate"`
	IGSTPercent decimal.Decimal `json:"igstRate"`
}

// TotalPercent returns the combined tax percentage.
func (t TaxRates) TotalPercent() decimal.Decimal {
	return t.CGSTPercent.Add(t.SGSTPercent).Add(t.IGSTPercent)
}

// IsZero reports whether all three components are zero (tax-exempt).
func (t TaxRates) IsZero() bool {
	return t.CGSTPercent.IsZero() && t.SGSTPercent.IsZero() && t.IGSTPercent.IsZero()
}

// Regime classifies the rates into a tax regime.
func (t TaxRates) Regime() TaxRegime {
	switch {
	case t.IsZero():
		return RegimeExempt
	case t.IGSTPercent.IsPositive():
		return RegimeInterState
	default:
		return RegimeIntraState
	}
}

// Valid reports whether the rates satisfy the mutual-exclusivity invariant:
// intra-state (CGST and SGST both positive, IGST zero), inter-state (IGST
// positive, CGST and SGST zero), or fully exempt.
func (t TaxRates) Valid() bool {
	if t.CGSTPercent.IsNegative() || t.SGSTPercent.IsNegative() || t.IGSTPercent.IsNegative() {
		return false
	}
	if t.IsZero() {
		return true
	}
	if t.IGSTPercent.IsPositive() {
		return t.CGSTPercent.IsZero() && t.SGSTPercent.IsZero()
	}
	return t.CGSTPercent.IsPositive() && t.SGSTPercent.IsPositive()
}

// Invoice represents a stored invoice. Totals are advisory: they are
// recomputed from the item list before every persist and render.
type Invoice struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	InvoiceNo   string          `db:"invoice_no" json:"invoiceNo"`
	InvoiceDate time.Time       `db:"invoice_date" json:"invoiceDate"`
	PONo        string          `db:"po_no" json:"poNo"`
	PODate      *time.Time      `db:"po_date" json:"poDate"`
	DCNo        string          `db:"dc_no" json:"dcNo"`
	DCDate      *time.Time      `db:"dc_date" json:"dcDate"`
	CustomerID  uuid.UUID       `db:"customer_id" json:"customerId"`
	Items       LineItems       `db:"items" json:"items"`
	CGSTRate    decimal.Decimal `db:"cgst_rate" json:"cgstRate"`
	SGSTRate    decimal.Decimal `db:"sgst_rate" json:"sgstRate"`
	IGSTRate    decimal.Decimal `db:"igst_rate" json:"igstRate"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxAmount   decimal.Decimal `db:"tax_amount" json:"taxAmount"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Rates returns the invoice's tax rates as a TaxRates value.
func (i *Invoice) Rates() TaxRates {
	return TaxRates{
		CGSTPercent: i.CGSTRate,
		SGSTPercent: i.SGSTRate,
		IGSTPercent: i.IGSTRate,
	}
}

// SetRates copies a TaxRates value onto the invoice columns.
func (i *Invoice) SetRates(t TaxRates) {
	i.CGSTRate = t.CGSTPercent
	i.SGSTRate = t.SGSTPercent
	i.IGSTRate = t.IGSTPercent
}

// SellerProfile is the fixed identity of the invoicing business,
// injected from configuration rather than baked into formatting code.
type SellerProfile struct {
	Name      string  `json:"name"`
	Address   Address `json:"address"`
	PANNumber string  `json:"panNumber"`
	GSTNumber string  `json:"gstNumber"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
}

// CustomerRef is a tagged union: an invoice payload may reference its
// customer by opaque id or carry the record embedded. It is resolved to a
// concrete Customer once at the service boundary.
type CustomerRef struct {
	ID       uuid.UUID
	Embedded *Customer
}

// IsEmbedded reports whether the reference carries a full customer record.
func (r CustomerRef) IsEmbedded() bool {
	return r.Embedded != nil
}

// UnmarshalJSON accepts either a string id or an embedded customer object.
func (r *CustomerRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("customer ref: invalid id %q", id)
		}
		r.ID = parsed
		r.Embedded = nil
		return nil
	}

	var customer Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return errors.New("customer ref: expected id string or customer object")
	}
	r.ID = customer.ID
	r.Embedded = &customer
	return nil
}

// MarshalJSON writes the embedded customer when present, otherwise the id.
func (r CustomerRef) MarshalJSON() ([]byte, error) {
	if r.Embedded != nil {
		return json.Marshal(r.Embedded)
	}
	return json.Marshal(r.ID.String())
}
