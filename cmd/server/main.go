package main

import (
	"fmt"
	"log"

	"billmint/internal/config"
	"billmint/internal/document"
	"billmint/internal/document/pdf"
	"billmint/internal/handler"
	"billmint/internal/repository/postgres"
	"billmint/internal/router"
	"billmint/internal/service"
	s3storage "billmint/internal/storage/s3"
	"billmint/internal/tax"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	customerRepo := postgres.NewCustomerRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	standardRate, err := cfg.Tax.StandardRate()
	if err != nil {
		return err
	}
	resolver := tax.NewResolver(cfg.Seller.State, standardRate)
	builder := document.NewBuilder(cfg.Seller.Profile())
	renderer := pdf.NewRenderer()

	// Initialize services
	customerSvc := service.NewCustomerService(customerRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, customerRepo, resolver)
	documentSvc := service.NewDocumentService(
		invoiceRepo, customerRepo, s3Client,
		builder, renderer,
		cfg.S3.Bucket, cfg.S3.PresignExpiry,
	)

	// Initialize handlers
	customerH := handler.NewCustomerHandler(customerSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(customerH, invoiceH, documentH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
