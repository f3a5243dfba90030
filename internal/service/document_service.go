package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"billmint/internal/document"
	"billmint/internal/document/pdf"
	"billmint/internal/domain"
	"billmint/internal/port"
)

// GenerateResult describes a rendered and stored invoice document.
type GenerateResult struct {
	InvoiceNo   string `json:"invoiceNo"`
	Key         string `json:"key"`
	URL         string `json:"url"`
	SizeBytes   int    `json:"sizeBytes"`
	ContentType string `json:"contentType"`
}

// DocumentService renders invoices into printable documents and stores them.
type DocumentService interface {
	Generate(ctx context.Context, invoiceID uuid.UUID) (*GenerateResult, error)
}

type documentService struct {
	invoices      port.InvoiceRepository
	customers     port.CustomerRepository
	storage       port.ObjectStorage
	builder       *document.Builder
	renderer      *pdf.Renderer
	bucket        string
	presignExpiry int64
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	invoices port.InvoiceRepository,
	customers port.CustomerRepository,
	storage port.ObjectStorage,
	builder *document.Builder,
	renderer *pdf.Renderer,
	bucket string,
	presignExpiry int64,
) DocumentService {
	return &documentService{
		invoices:      invoices,
		customers:     customers,
		storage:       storage,
		builder:       builder,
		renderer:      renderer,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

// Generate renders the invoice as a PDF, uploads it to the artifact store,
// and returns a presigned download URL. Validation happens before any
// rendering or upload, so a malformed invoice never produces a partial
// document.
func (s *documentService) Generate(ctx context.Context, invoiceID uuid.UUID) (*GenerateResult, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.builder.Build(invoice, customer)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.Render(snapshot)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("invoices/%s.pdf", invoice.InvoiceNo)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	return &GenerateResult{
		InvoiceNo:   invoice.InvoiceNo,
		Key:         key,
		URL:         url,
		SizeBytes:   len(data),
		ContentType: "application/pdf",
	}, nil
}
