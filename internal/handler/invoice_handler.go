package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billmint/internal/domain"
	"billmint/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Create a new invoice; tax rates default from the customer's state when omitted
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} APIResponse "Invoice created"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Customer not found"
// @Failure 409 {object} APIResponse "Invoice number already exists"
// @Failure 422 {object} APIResponse "Tax regime unresolved"
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List invoices with optional invoice-number search and pagination
// @Tags invoices
// @Produce json
// @Param search query string false "Match against invoice number"
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} APIResponse "List of invoices"
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	invoices, total, err := h.invoiceService.List(c.Request.Context(), search, page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	if page < 1 {
		page = 1
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Page: page, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Description Get invoice details
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse "Invoice details"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Update handles PUT /api/v1/invoices/:id
// @Summary Update an invoice
// @Description Replace invoice details; totals are recomputed from the items
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body service.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} APIResponse "Invoice updated"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Failure 409 {object} APIResponse "Invoice number already exists"
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete an invoice
// @Description Delete an invoice record
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse "Invoice deleted"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// NextNumber handles GET /api/v1/invoices/next-number
// @Summary Suggest the next invoice number
// @Description Returns the next INV-N number in sequence
// @Tags invoices
// @Produce json
// @Success 200 {object} APIResponse "Suggested invoice number"
// @Router /invoices/next-number [get]
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	next, err := h.invoiceService.NextInvoiceNo(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"invoiceNo": next})
}

// Export handles GET /api/v1/invoices/export
// @Summary Export the invoice register
// @Description Download all invoices as a CSV or XLSX register
// @Tags invoices
// @Produce text/csv
// @Param format query string false "Export format: csv or xlsx" default(csv)
// @Success 200 {file} file "Register file"
// @Failure 400 {object} APIResponse "Unsupported format"
// @Router /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(c.DefaultQuery("format", "csv"))
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "format must be csv or xlsx")
		return
	}

	data, contentType, err := h.invoiceService.ExportRegister(c.Request.Context(), format)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("invoice-register-%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
