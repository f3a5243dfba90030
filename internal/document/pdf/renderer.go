// Package pdf lays out an invoice snapshot as a fixed A4 document. It
// performs no business computation: every number it prints was computed
// by the document builder.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"billmint/internal/document"
	"billmint/internal/domain"
	"billmint/internal/money"
)

// Column widths of the item table in millimetres (A4 width 210, 12mm margins).
var colWidths = [6]float64{14, 72, 24, 24, 26, 26}

var colHeaders = [6]string{"S.L.No", "Description of Goods", "HSN/SAC", "Qty", "Rate", "Amount in INR"}

// Renderer produces printable tax-invoice PDFs from snapshots.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render lays out the snapshot and returns the finished PDF bytes. The
// snapshot is treated as immutable; rows are printed in snapshot order.
func (r *Renderer) Render(snap *document.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", domain.ErrRenderFailed)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AddPage()

	r.title(pdf)
	r.sellerBlock(pdf, snap.Seller)
	r.billingBlock(pdf, snap)
	r.itemTable(pdf, snap)
	r.totalsBlock(pdf, snap)
	r.wordsLine(pdf, snap.AmountInWords)
	r.signatureBlocks(pdf, snap.Seller.Name)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) title(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func (r *Renderer) sellerBlock(pdf *gofpdf.Fpdf, seller domain.SellerProfile) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 6, seller.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	addr := seller.Address
	pdf.CellFormat(0, 5, addr.Street, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("%s, %s - %s", addr.City, addr.State, addr.PostalCode), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("PAN: %s    GSTIN: %s", seller.PANNumber, seller.GSTNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Email: %s    PH: %s", seller.Email, seller.Phone), "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) billingBlock(pdf *gofpdf.Fpdf, snap *document.Snapshot) {
	left, _ := pdf.GetXY()
	startY := pdf.GetY()
	half := 93.0

	// Buyer details, left column.
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(half, 5, "Billing To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	customer := snap.Customer
	pdf.CellFormat(half, 5, customer.CustomerName, "", 1, "L", false, 0, "")
	addr := customer.Address
	pdf.MultiCell(half, 5, fmt.Sprintf("%s, %s, %s - %s", addr.Street, addr.City, addr.State, addr.PostalCode), "", "L", false)
	gstin := customer.GSTNumber
	if gstin == "" {
		gstin = "N/A"
	}
	pdf.CellFormat(half, 5, "GSTIN: "+gstin, "", 1, "L", false, 0, "")
	leftEndY := pdf.GetY()

	// Invoice metadata, right column.
	pdf.SetXY(left+half, startY)
	r.metaRow(pdf, left+half, "Invoice No:", snap.InvoiceNo)
	r.metaRow(pdf, left+half, "Invoice Date:", snap.InvoiceDate)
	if snap.PONo != "" {
		r.metaRow(pdf, left+half, "PO No:", snap.PONo)
	}
	if snap.PODate != "" {
		r.metaRow(pdf, left+half, "PO Date:", snap.PODate)
	}
	if snap.DCNo != "" {
		r.metaRow(pdf, left+half, "DC No:", snap.DCNo)
	}
	if snap.DCDate != "" {
		r.metaRow(pdf, left+half, "DC Date:", snap.DCDate)
	}

	if pdf.GetY() < leftEndY {
		pdf.SetY(leftEndY)
	}
	pdf.SetX(left)
	pdf.Ln(4)
}

func (r *Renderer) metaRow(pdf *gofpdf.Fpdf, x float64, label, value string) {
	pdf.SetX(x)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 5, label, "", 0, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(63, 5, value, "", 1, "R", false, 0, "")
}

func (r *Renderer) itemTable(pdf *gofpdf.Fpdf, snap *document.Snapshot) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	aligns := [6]string{"C", "L", "C", "C", "R", "R"}
	for i, header := range colHeaders {
		pdf.CellFormat(colWidths[i], 7, header, "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range snap.Lines {
		cells := [6]string{
			fmt.Sprintf("%d", line.SerialNo),
			line.Description,
			line.HSNSAC,
			fmt.Sprintf("%s %s", line.Quantity.String(), line.Unit),
			"Rs. " + money.Format2(line.Rate),
			"Rs. " + money.Format2(line.Amount),
		}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 6, cell, "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

func (r *Renderer) totalsBlock(pdf *gofpdf.Fpdf, snap *document.Snapshot) {
	labelW, valueW := 60.0, 40.0
	indent := 186.0 - labelW - valueW

	row := func(bold bool, label, value string) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.SetX(12 + indent)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	rates := snap.Rates
	row(true, "TOTAL", "Rs. "+money.Format2(snap.Subtotal))
	if rates.CGSTPercent.IsPositive() {
		row(false, fmt.Sprintf("CGST @ %s%%", rates.CGSTPercent.String()), "Rs. "+money.Format2(money.Round2(snap.CGSTAmount)))
	}
	if rates.SGSTPercent.IsPositive() {
		row(false, fmt.Sprintf("SGST @ %s%%", rates.SGSTPercent.String()), "Rs. "+money.Format2(money.Round2(snap.SGSTAmount)))
	}
	if rates.IGSTPercent.IsPositive() {
		row(false, fmt.Sprintf("IGST @ %s%%", rates.IGSTPercent.String()), "Rs. "+money.Format2(money.Round2(snap.IGSTAmount)))
	}
	row(true, "GRAND TOTAL", "Rs. "+money.Format2(money.Round2(snap.TotalAmount)))
	pdf.Ln(3)
}

func (r *Renderer) wordsLine(pdf *gofpdf.Fpdf, inWords string) {
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 6, "Amount in words: "+inWords, "1", "L", false)
	pdf.Ln(8)
}

func (r *Renderer) signatureBlocks(pdf *gofpdf.Fpdf, sellerName string) {
	y := pdf.GetY()

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 5, "Receiver's signature & Seal", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(90, 5, "Name: ___________________", "", 1, "L", false, 0, "")
	pdf.CellFormat(90, 5, "Date: ___________________", "", 1, "L", false, 0, "")

	pdf.SetXY(108, y)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 5, "For "+sellerName, "", 2, "R", false, 0, "")
	pdf.Ln(6)
	pdf.SetX(108)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(90, 5, "Authorized Signatory", "", 1, "R", false, 0, "")
}
