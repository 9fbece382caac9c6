package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
)

// CustomerService handles customer operations.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerRequest contains the parameters for creating a customer.
type CreateCustomerRequest struct {
	Name        string
	Email       string
	Phone       string
	Preferences map[string]string
}

// CreateCustomer registers a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	if req.Name == "" {
		return nil, ErrInvalidCustomerName
	}

	customer := &domain.Customer{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Preferences: req.Preferences,
		CreatedAt:   time.Now(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	if id == "" {
		return nil, ErrInvalidCustomerID
	}
	return s.customerRepo.GetByID(ctx, id)
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.customerRepo.GetAll(ctx)
}
