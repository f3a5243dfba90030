package document

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmint/internal/domain"
)

func testSeller() domain.SellerProfile {
	return domain.SellerProfile{
		Name: "Rhombick Technologies",
		Address: domain.Address{
			Street:     "Sy No 1, Bommasandra Industrial Area",
			City:       "Bangalore",
			State:      "KA",
			PostalCode: "560105",
			Country:    "India",
		},
		PANNumber: "AAACR1234F",
		GSTNumber: "29AAACR1234F1Z5",
		Email:     "billing@rhombick.in",
		Phone:     "+91 80 1234 5678",
	}
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		CustomerID:   "CUST-1",
		CustomerName: "Acme Fabricators",
		GSTNumber:    "27AABCA1234Z1Z9",
		Email:        "accounts@acme.in",
		PhoneNumber:  "+91 22 9999 8888",
		Address: domain.Address{
			Street:     "Plot 14, MIDC",
			City:       "Pune",
			State:      "MH",
			PostalCode: "411001",
			Country:    "India",
		},
	}
}

func testInvoice() *domain.Invoice {
	return &domain.Invoice{
		InvoiceNo:   "INV-42",
		InvoiceDate: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		Items: domain.LineItems{
			{Description: "Machined bracket", HSNSAC: "7326", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(500)},
			{Description: "Assembly service", HSNSAC: "9987", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1000)},
		},
		IGSTRate: decimal.NewFromInt(18),
	}
}

func TestBuild_RecomputesTotals(t *testing.T) {
	inv := testInvoice()
	// Stored totals are advisory and must be overwritten.
	inv.Subtotal = decimal.NewFromInt(999999)
	inv.TotalAmount = decimal.NewFromInt(1)

	snap, err := NewBuilder(testSeller()).Build(inv, testCustomer())
	require.NoError(t, err)

	assert.Equal(t, "2000", snap.Subtotal.String())
	assert.Equal(t, "360", snap.TaxAmount.String())
	assert.Equal(t, "2360", snap.TotalAmount.String())
	assert.Equal(t, "360", snap.IGSTAmount.String())
	assert.True(t, snap.CGSTAmount.IsZero())
}

func TestBuild_LineOrderAndAmounts(t *testing.T) {
	snap, err := NewBuilder(testSeller()).Build(testInvoice(), testCustomer())
	require.NoError(t, err)

	require.Len(t, snap.Lines, 2)
	assert.Equal(t, 1, snap.Lines[0].SerialNo)
	assert.Equal(t, "Machined bracket", snap.Lines[0].Description)
	assert.Equal(t, "1000", snap.Lines[0].Amount.String())
	assert.Equal(t, 2, snap.Lines[1].SerialNo)
	assert.Equal(t, "1000", snap.Lines[1].Amount.String())
	assert.Equal(t, "NOS", snap.Lines[0].Unit)
}

func TestBuild_FormatsDates(t *testing.T) {
	inv := testInvoice()
	poDate := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	inv.PONo = "PO-77"
	inv.PODate = &poDate

	snap, err := NewBuilder(testSeller()).Build(inv, testCustomer())
	require.NoError(t, err)

	assert.Equal(t, "07-03-2025", snap.InvoiceDate)
	assert.Equal(t, "02-01-2025", snap.PODate)
	assert.Equal(t, "", snap.DCDate)
}

func TestBuild_AmountInWords(t *testing.T) {
	snap, err := NewBuilder(testSeller()).Build(testInvoice(), testCustomer())
	require.NoError(t, err)
	assert.Equal(t, "Two Thousand Three Hundred Sixty Rupees only", snap.AmountInWords)
}

func TestBuild_RejectsEmptyItems(t *testing.T) {
	inv := testInvoice()
	inv.Items = nil

	_, err := NewBuilder(testSeller()).Build(inv, testCustomer())
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Fields[0].Field)
}

func TestBuild_RejectsZeroQuantityAndNegativeRate(t *testing.T) {
	inv := testInvoice()
	inv.Items = domain.LineItems{
		{Description: "bad", Quantity: decimal.Zero, Rate: decimal.NewFromInt(-5)},
	}

	_, err := NewBuilder(testSeller()).Build(inv, testCustomer())
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "items[0].quantity")
	assert.Contains(t, fields, "items[0].rate")
}

func TestBuild_RejectsMissingCustomer(t *testing.T) {
	_, err := NewBuilder(testSeller()).Build(testInvoice(), nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customer", verr.Fields[0].Field)
}

func TestBuild_RejectsIncompleteAddress(t *testing.T) {
	customer := testCustomer()
	customer.Address.State = ""
	customer.Address.PostalCode = " "

	_, err := NewBuilder(testSeller()).Build(testInvoice(), customer)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "address.state")
	assert.Contains(t, fields, "address.postalCode")
}

func TestBuild_RejectsMissingCountry(t *testing.T) {
	customer := testCustomer()
	customer.Address.Country = ""

	_, err := NewBuilder(testSeller()).Build(testInvoice(), customer)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "address.country", verr.Fields[0].Field)
}

func TestBuild_RejectsMixedRegimes(t *testing.T) {
	inv := testInvoice()
	inv.CGSTRate = decimal.NewFromInt(9)
	inv.SGSTRate = decimal.NewFromInt(9)
	// IGST already 18 on the test invoice: both regimes at once.

	_, err := NewBuilder(testSeller()).Build(inv, testCustomer())
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "taxRates", verr.Fields[0].Field)
}

func TestBuild_EnumeratesAllViolations(t *testing.T) {
	inv := testInvoice()
	inv.Items = nil
	customer := testCustomer()
	customer.Address.City = ""

	_, err := NewBuilder(testSeller()).Build(inv, customer)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Fields), 2)
}

func TestBuild_ExemptInvoiceAllowed(t *testing.T) {
	inv := testInvoice()
	inv.IGSTRate = decimal.Zero

	snap, err := NewBuilder(testSeller()).Build(inv, testCustomer())
	require.NoError(t, err)
	assert.True(t, snap.TaxAmount.IsZero())
	assert.Equal(t, "2000", snap.TotalAmount.String())
}
