package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billmint/internal/domain"
	"billmint/internal/export"
	"billmint/internal/money"
	"billmint/internal/port"
	"billmint/internal/sequence"
	"billmint/internal/tax"
)

const (
	invoicePrefix = "INV"
	dateLayout    = "02-01-2006"

	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// LineItemRequest is one invoice line in a create/update payload.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	HSNSAC      string          `json:"hsnSac"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate"`
}

// CreateInvoiceRequest is the payload for creating an invoice. The
// customer field accepts either an existing customer's id or an embedded
// customer record created alongside the invoice. Dates use DD-MM-YYYY.
// Omitted tax rates are resolved from the customer's state; rates given
// explicitly, including all zeros for an exempt supply, are kept as-is.
type CreateInvoiceRequest struct {
	InvoiceNo   string             `json:"invoiceNo" binding:"required"`
	InvoiceDate string             `json:"invoiceDate" binding:"required"`
	PONo        string             `json:"poNo"`
	PODate      string             `json:"poDate"`
	DCNo        string             `json:"dcNo"`
	DCDate      string             `json:"dcDate"`
	Customer    domain.CustomerRef `json:"customer" binding:"required"`
	Items       []LineItemRequest  `json:"items" binding:"required,min=1,dive"`
	CGSTRate    *decimal.Decimal   `json:"cgstRate"`
	SGSTRate    *decimal.Decimal   `json:"sgstRate"`
	IGSTRate    *decimal.Decimal   `json:"igstRate"`
}

// UpdateInvoiceRequest is the payload for updating an invoice.
type UpdateInvoiceRequest = CreateInvoiceRequest

// InvoiceService defines invoice business operations.
type InvoiceService interface {
	Create(ctx context.Context, req *CreateInvoiceRequest) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, search string, page, limit int) ([]domain.Invoice, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateInvoiceRequest) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	NextInvoiceNo(ctx context.Context) (string, error)
	ExportRegister(ctx context.Context, format domain.ExportFormat) ([]byte, string, error)
}

type invoiceService struct {
	invoices  port.InvoiceRepository
	customers port.CustomerRepository
	resolver  *tax.Resolver
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoices port.InvoiceRepository, customers port.CustomerRepository, resolver *tax.Resolver) InvoiceService {
	return &invoiceService{
		invoices:  invoices,
		customers: customers,
		resolver:  resolver,
	}
}

func (s *invoiceService) Create(ctx context.Context, req *CreateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, search string, page, limit int) ([]domain.Invoice, int, error) {
	offset, limit := normalizePage(page, limit)
	return s.invoices.List(ctx, strings.TrimSpace(search), offset, limit)
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, req *UpdateInvoiceRequest) (*domain.Invoice, error) {
	existing, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	invoice.ID = existing.ID
	invoice.CreatedAt = existing.CreatedAt

	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.invoices.Delete(ctx, id)
}

func (s *invoiceService) NextInvoiceNo(ctx context.Context) (string, error) {
	existing, err := s.invoices.ListInvoiceNumbers(ctx)
	if err != nil {
		return "", err
	}
	return sequence.Next(invoicePrefix, existing), nil
}

func (s *invoiceService) ExportRegister(ctx context.Context, format domain.ExportFormat) ([]byte, string, error) {
	invoices, err := s.invoices.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	// Customers repeat across invoices; fetch each once.
	cache := map[uuid.UUID]*domain.Customer{}
	rows := make([]export.Row, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		customer, ok := cache[inv.CustomerID]
		if !ok {
			customer, err = s.customers.GetByID(ctx, inv.CustomerID)
			if err != nil {
				return nil, "", err
			}
			cache[inv.CustomerID] = customer
		}

		subtotal, taxAmount, total := money.Totals(inv.Items, inv.Rates())
		rows = append(rows, export.Row{
			InvoiceNo:     inv.InvoiceNo,
			InvoiceDate:   inv.InvoiceDate,
			CustomerName:  customer.CustomerName,
			CustomerGSTIN: customer.GSTNumber,
			PlaceOfSupply: customer.Address.State,
			Subtotal:      money.Round2(subtotal),
			CGST:          money.ComponentAmount(subtotal, inv.CGSTRate),
			SGST:          money.ComponentAmount(subtotal, inv.SGSTRate),
			IGST:          money.ComponentAmount(subtotal, inv.IGSTRate),
			TaxAmount:     money.Round2(taxAmount),
			GrandTotal:    money.Round2(total),
			LineItemCount: len(inv.Items),
		})
	}

	var buf bytes.Buffer
	switch format {
	case domain.ExportFormatXLSX:
		if err := export.WriteXLSX(&buf, rows); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), xlsxContentType, nil
	case domain.ExportFormatCSV:
		buf.Write(export.BOM)
		w := export.NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, "", err
		}
		if err := w.WriteRows(rows); err != nil {
			return nil, "", err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), csvContentType, nil
	default:
		return nil, "", domain.NewValidationError("format", "must be csv or xlsx")
	}
}

// fromRequest validates the payload, resolves the customer reference and
// tax rates, recomputes totals, and returns an invoice ready to persist.
func (s *invoiceService) fromRequest(ctx context.Context, req *CreateInvoiceRequest) (*domain.Invoice, error) {
	verr := &domain.ValidationError{}

	invoiceDate, err := time.Parse(dateLayout, req.InvoiceDate)
	if err != nil {
		verr.Add("invoiceDate", "must be in DD-MM-YYYY format")
	}
	poDate, err := parseOptionalDate(req.PODate)
	if err != nil {
		verr.Add("poDate", "must be in DD-MM-YYYY format")
	}
	dcDate, err := parseOptionalDate(req.DCDate)
	if err != nil {
		verr.Add("dcDate", "must be in DD-MM-YYYY format")
	}

	items := make(domain.LineItems, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.LineItem{
			Description: strings.TrimSpace(item.Description),
			HSNSAC:      strings.TrimSpace(item.HSNSAC),
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		})
	}

	if verr.HasErrors() {
		return nil, verr
	}

	customer, err := s.resolveCustomer(ctx, req.Customer)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		InvoiceNo:   strings.TrimSpace(req.InvoiceNo),
		InvoiceDate: invoiceDate,
		PONo:        strings.TrimSpace(req.PONo),
		PODate:      poDate,
		DCNo:        strings.TrimSpace(req.DCNo),
		DCDate:      dcDate,
		CustomerID:  customer.ID,
		Items:       items,
	}

	ratesProvided := req.CGSTRate != nil || req.SGSTRate != nil || req.IGSTRate != nil
	if ratesProvided {
		invoice.SetRates(domain.TaxRates{
			CGSTPercent: derefRate(req.CGSTRate),
			SGSTPercent: derefRate(req.SGSTRate),
			IGSTPercent: derefRate(req.IGSTRate),
		})
		if !invoice.Rates().Valid() {
			return nil, domain.NewValidationError("taxRates", "CGST+SGST and IGST regimes are mutually exclusive")
		}
	} else if err := s.resolver.ResolveFor(invoice, customer.Address.State, false); err != nil {
		return nil, err
	}

	subtotal, taxAmount, total := money.Totals(invoice.Items, invoice.Rates())
	invoice.Subtotal = money.Round2(subtotal)
	invoice.TaxAmount = money.Round2(taxAmount)
	invoice.TotalAmount = money.Round2(total)

	return invoice, nil
}

// resolveCustomer turns a customer reference into a persisted customer.
// An embedded record without an id is created on the fly; everything else
// must already exist.
func (s *invoiceService) resolveCustomer(ctx context.Context, ref domain.CustomerRef) (*domain.Customer, error) {
	if ref.IsEmbedded() && ref.ID == uuid.Nil {
		customer := ref.Embedded
		if strings.TrimSpace(customer.CustomerID) == "" {
			existing, err := s.customers.ListCustomerIDs(ctx)
			if err != nil {
				return nil, err
			}
			customer.CustomerID = sequence.Next(customerPrefix, existing)
		}
		if err := s.customers.Create(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	if ref.ID == uuid.Nil {
		return nil, domain.NewValidationError("customer", "customer id or embedded record is required")
	}
	return s.customers.GetByID(ctx, ref.ID)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func derefRate(r *decimal.Decimal) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	return *r
}
