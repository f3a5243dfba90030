package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testRows() []Row {
	return []Row{
		{
			InvoiceNo:     "INV-1",
			InvoiceDate:   time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Acme Fabricators",
			CustomerGSTIN: "27AABCA1234Z1Z9",
			PlaceOfSupply: "MH",
			Subtotal:      decimal.NewFromInt(2000),
			IGST:          decimal.NewFromInt(360),
			TaxAmount:     decimal.NewFromInt(360),
			GrandTotal:    decimal.NewFromInt(2360),
			LineItemCount: 2,
		},
		{
			InvoiceNo:     "INV-2",
			InvoiceDate:   time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Bangalore Tooling",
			PlaceOfSupply: "KA",
			Subtotal:      decimal.NewFromInt(1000),
			CGST:          decimal.NewFromInt(90),
			SGST:          decimal.NewFromInt(90),
			TaxAmount:     decimal.NewFromInt(180),
			GrandTotal:    decimal.NewFromInt(1180),
			LineItemCount: 1,
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 12)
	assert.Equal(t, "Invoice Number", row[0])
	assert.Equal(t, "Line Item Count", row[11])
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRows(testRows()))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	all, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, all, 3)

	first := all[1]
	assert.Equal(t, "INV-1", first[0])
	assert.Equal(t, "07-03-2025", first[1])
	assert.Equal(t, "2000.00", first[5])
	assert.Equal(t, "360.00", first[8])
	assert.Equal(t, "2360.00", first[10])
	assert.Equal(t, "2", first[11])

	second := all[2]
	assert.Equal(t, "90.00", second[6])
	assert.Equal(t, "90.00", second[7])
	assert.Equal(t, "0.00", second[8])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Invoice Number", rows[0][0])
	assert.Equal(t, "INV-1", rows[1][0])
	assert.Equal(t, "1180.00", rows[2][10])
}
