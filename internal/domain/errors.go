package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrDuplicateInvoiceNo  = errors.New("invoice number already exists")
	ErrDuplicateCustomerID = errors.New("customer id already exists")
	ErrRegimeUnresolved    = errors.New("buyer state unusable for tax-regime resolution")
	ErrRenderFailed        = errors.New("invoice document rendering failed")
	ErrUploadFailed        = errors.New("document upload to storage failed")
)

// FieldError identifies a single violated field and why it failed.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated field of a malformed invoice,
// customer, or amount input. The core never partially builds on one.
type ValidationError struct {
	Fields []FieldError
}

// Error renders the full field list so the caller can show a specific message.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a violated field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field was violated.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
