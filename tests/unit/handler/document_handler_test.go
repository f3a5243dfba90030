package handler_test

import (
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

func newDocumentHandler() (*handler.DocumentHandler, *mocks.MockDocumentService) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc)
	return h, mockSvc
}

func TestDocumentHandler_Generate_Success(t *testing.T) {
	h, mockSvc := newDocumentHandler()

	id := uuid.New()
	mockSvc.On("Generate", mock.Anything, id).Return(&service.GenerateResult{
		InvoiceNo:   "INV-12",
		Key:         "invoices/INV-12.pdf",
		URL:         "https://example/presigned",
		SizeBytes:   4096,
		ContentType: "application/pdf",
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+id.String()+"/document", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), "invoices/INV-12.pdf")
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Generate_InvalidID(t *testing.T) {
	h, _ := newDocumentHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/nope/document", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandler_Generate_RenderFailure(t *testing.T) {
	h, mockSvc := newDocumentHandler()

	id := uuid.New()
	mockSvc.On("Generate", mock.Anything, id).Return(nil, domain.ErrRenderFailed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+id.String()+"/document", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Generate(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp handler.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "RENDER_FAILED", resp.Error.Code)
}
