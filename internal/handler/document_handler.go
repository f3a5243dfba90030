package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billmint/internal/service"
)

// DocumentHandler handles invoice document generation endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Generate handles POST /api/v1/invoices/:id/document
// @Summary Generate an invoice document
// @Description Render the invoice as a PDF, store it, and return a presigned download URL
// @Tags documents
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse "Document location"
// @Failure 400 {object} APIResponse "Invoice fails render preconditions"
// @Failure 404 {object} APIResponse "Invoice or customer not found"
// @Failure 500 {object} APIResponse "Render or upload failed"
// @Router /invoices/{id}/document [post]
func (h *DocumentHandler) Generate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	result, err := h.documentService.Generate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
