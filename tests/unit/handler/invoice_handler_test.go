package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billmint/internal/domain"
	"billmint/internal/handler"
	"billmint/internal/service"
	"billmint/mocks"
)

func newInvoiceHandler() (*handler.InvoiceHandler, *mocks.MockInvoiceService) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	return h, mockSvc
}

func invoiceBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"invoiceNo":   "INV-12",
		"invoiceDate": "15-08-2026",
		"customer":    uuid.New().String(),
		"items": []map[string]interface{}{
			{"description": "Machined bracket", "hsnSac": "7326", "quantity": "10", "rate": "200"},
		},
	})
	return body
}

// --- Create ---

func TestInvoiceHandler_Create_Success(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	expected := &domain.Invoice{ID: uuid.New(), InvoiceNo: "INV-12"}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(req *service.CreateInvoiceRequest) bool {
		return req.InvoiceNo == "INV-12" && len(req.Items) == 1
	})).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(invoiceBody()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Create_ValidationErrorDetails(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	verr := domain.NewValidationError("invoiceDate", "must be in DD-MM-YYYY format")
	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.CreateInvoiceRequest")).
		Return(nil, verr)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(invoiceBody()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "invoiceDate", resp.Error.Details[0].Field)
}

func TestInvoiceHandler_Create_RegimeUnresolved(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.CreateInvoiceRequest")).
		Return(nil, domain.ErrRegimeUnresolved)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(invoiceBody()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// --- Export ---

func TestInvoiceHandler_Export_CSV(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	mockSvc.On("ExportRegister", mock.Anything, domain.ExportFormatCSV).
		Return([]byte("Invoice Number\n"), "text/csv; charset=utf-8", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/export", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "Invoice Number")
}

func TestInvoiceHandler_Export_UnsupportedFormat(t *testing.T) {
	h, _ := newInvoiceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/export?format=pdf", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- NextNumber ---

func TestInvoiceHandler_NextNumber(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	mockSvc.On("NextInvoiceNo", mock.Anything).Return("INV-13", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/next-number", nil)

	h.NextNumber(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-13")
}

// --- Delete ---

func TestInvoiceHandler_Delete_NotFound(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(domain.ErrInvoiceNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/invoices/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
