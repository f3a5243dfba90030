package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billmint/internal/domain"
	"billmint/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	query := `INSERT INTO invoices
		(id, invoice_no, invoice_date, po_no, po_date, dc_no, dc_date, customer_id, items,
		 cgst_rate, sgst_rate, igst_rate, subtotal, tax_amount, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID, invoice.InvoiceNo, invoice.InvoiceDate, invoice.PONo, invoice.PODate,
		invoice.DCNo, invoice.DCDate, invoice.CustomerID, invoice.Items,
		invoice.CGSTRate, invoice.SGSTRate, invoice.IGSTRate,
		invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount,
		invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_no") {
			return domain.ErrDuplicateInvoiceNo
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Invoice, int, error) {
	pattern := "%" + search + "%"

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE invoice_no ILIKE $1", pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices WHERE invoice_no ILIKE $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices, "SELECT * FROM invoices ORDER BY invoice_date, invoice_no")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAll: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) ListInvoiceNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := r.db.SelectContext(ctx, &numbers, "SELECT invoice_no FROM invoices")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListInvoiceNumbers: %w", err)
	}
	return numbers, nil
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	query := `UPDATE invoices SET invoice_no = $1, invoice_date = $2, po_no = $3, po_date = $4,
		dc_no = $5, dc_date = $6, customer_id = $7, items = $8,
		cgst_rate = $9, sgst_rate = $10, igst_rate = $11,
		subtotal = $12, tax_amount = $13, total_amount = $14, updated_at = $15
		WHERE id = $16`
	result, err := r.db.ExecContext(ctx, query,
		invoice.InvoiceNo, invoice.InvoiceDate, invoice.PONo, invoice.PODate,
		invoice.DCNo, invoice.DCDate, invoice.CustomerID, invoice.Items,
		invoice.CGSTRate, invoice.SGSTRate, invoice.IGSTRate,
		invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount,
		invoice.UpdatedAt, invoice.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_no") {
			return domain.ErrDuplicateInvoiceNo
		}
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
