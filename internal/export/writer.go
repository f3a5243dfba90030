// Package export writes the invoice register as CSV or XLSX for
// accountants reconciling filed GST returns.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// BOM is the UTF-8 byte order mark, prepended for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the register header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Customer",
	"Customer GSTIN",
	"Place of Supply",
	"Subtotal",
	"CGST",
	"SGST",
	"IGST",
	"Tax Amount",
	"Grand Total",
	"Line Item Count",
}

// Row is one flattened register entry for a single invoice.
type Row struct {
	InvoiceNo     string
	InvoiceDate   time.Time
	CustomerName  string
	CustomerGSTIN string
	PlaceOfSupply string
	Subtotal      decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
	LineItemCount int
}

func (r *Row) cells() []string {
	return []string{
		r.InvoiceNo,
		r.InvoiceDate.Format("02-01-2006"),
		r.CustomerName,
		r.CustomerGSTIN,
		r.PlaceOfSupply,
		r.Subtotal.StringFixed(2),
		r.CGST.StringFixed(2),
		r.SGST.StringFixed(2),
		r.IGST.StringFixed(2),
		r.TaxAmount.StringFixed(2),
		r.GrandTotal.StringFixed(2),
		fmt.Sprintf("%d", r.LineItemCount),
	}
}

// Writer wraps csv.Writer for exporting the invoice register.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the register header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows writes a batch of register rows in order.
func (w *Writer) WriteRows(rows []Row) error {
	for i := range rows {
		if err := w.csv.Write(rows[i].cells()); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error reports any error that occurred during a previous write or flush.
func (w *Writer) Error() error {
	return w.csv.Error()
}
