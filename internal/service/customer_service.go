package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"billmint/internal/domain"
	"billmint/internal/port"
	"billmint/internal/sequence"
)

const customerPrefix = "CUST"

// CreateCustomerRequest is the payload for creating a customer.
type CreateCustomerRequest struct {
	CustomerID   string         `json:"customerId"`
	CustomerName string         `json:"customerName" binding:"required"`
	GSTNumber    string         `json:"gstNumber"`
	Email        string         `json:"email" binding:"omitempty,email"`
	PhoneNumber  string         `json:"phoneNumber"`
	Address      domain.Address `json:"address" binding:"required"`
}

// UpdateCustomerRequest is the payload for updating a customer.
type UpdateCustomerRequest struct {
	CustomerID   string         `json:"customerId" binding:"required"`
	CustomerName string         `json:"customerName" binding:"required"`
	GSTNumber    string         `json:"gstNumber"`
	Email        string         `json:"email" binding:"omitempty,email"`
	PhoneNumber  string         `json:"phoneNumber"`
	Address      domain.Address `json:"address" binding:"required"`
}

// CustomerService defines customer business operations.
type CustomerService interface {
	Create(ctx context.Context, req *CreateCustomerRequest) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, search string, page, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCustomerRequest) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	NextCustomerID(ctx context.Context) (string, error)
}

type customerService struct {
	repo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo port.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req *CreateCustomerRequest) (*domain.Customer, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		suggested, err := s.NextCustomerID(ctx)
		if err != nil {
			return nil, err
		}
		customerID = suggested
	}

	customer := &domain.Customer{
		CustomerID:   customerID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		GSTNumber:    strings.TrimSpace(req.GSTNumber),
		Email:        strings.TrimSpace(req.Email),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Address:      req.Address,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, search string, page, limit int) ([]domain.Customer, int, error) {
	offset, limit := normalizePage(page, limit)
	return s.repo.List(ctx, strings.TrimSpace(search), offset, limit)
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.CustomerID = strings.TrimSpace(req.CustomerID)
	customer.CustomerName = strings.TrimSpace(req.CustomerName)
	customer.GSTNumber = strings.TrimSpace(req.GSTNumber)
	customer.Email = strings.TrimSpace(req.Email)
	customer.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	customer.Address = req.Address

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *customerService) NextCustomerID(ctx context.Context) (string, error) {
	existing, err := s.repo.ListCustomerIDs(ctx)
	if err != nil {
		return "", err
	}
	return sequence.Next(customerPrefix, existing), nil
}

// normalizePage converts 1-based page/limit query values into an offset
// and a clamped limit.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return (page - 1) * limit, limit
}
