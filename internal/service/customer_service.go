package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tailorpos/internal/models"
	"tailorpos/internal/repository"
)

// CustomerService handles customer business logic
type CustomerService struct {
	mu        *sync.Mutex
	customers repository.CustomerRepository
	sequence  repository.IDSequence
	log       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	mu *sync.Mutex,
	customers repository.CustomerRepository,
	sequence repository.IDSequence,
	log *zap.Logger,
) *CustomerService {
	return &CustomerService{
		mu:        mu,
		customers: customers,
		sequence:  sequence,
		log:       log,
	}
}

// ListCustomers returns customers in stored order, filtered by name or phone
func (s *CustomerService) ListCustomers(ctx context.Context, query string) ([]*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Matches(query) {
			result = append(result, c.Clone())
		}
	}

	return result, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, err
	}

	index := findCustomer(customers, id)
	if index < 0 {
		return nil, &NotFoundError{Resource: "customer", ID: id}
	}

	return customers[index].Clone(), nil
}

// SaveCustomer creates (ID 0) or replaces a customer.
// Taking a phone already held by another customer is rejected. An edit that keeps
// the stored phone is accepted even when imported data left it shared.
func (s *CustomerService) SaveCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	if customer.ID != 0 {
		index = findCustomer(customers, customer.ID)
		if index < 0 {
			return nil, &NotFoundError{Resource: "customer", ID: customer.ID}
		}
	}

	if index < 0 || customers[index].Phone != customer.Phone {
		for _, c := range customers {
			if c.Phone == customer.Phone && c.ID != customer.ID {
				return nil, &ConflictError{
					Resource: "customer",
					Message:  fmt.Sprintf("phone %s already belongs to customer %d", customer.Phone, c.ID),
				}
			}
		}
	}

	saved := customer.Clone()
	var next []*models.Customer

	if index < 0 {
		id, err := s.sequence.Next(ctx, maxCustomerID(customers))
		if err != nil {
			return nil, err
		}
		saved.ID = id

		next = make([]*models.Customer, 0, len(customers)+1)
		next = append(next, saved)
		next = append(next, customers...)
	} else {
		next = make([]*models.Customer, len(customers))
		copy(next, customers)
		next[index] = saved
	}

	if err := s.customers.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save customers: %w", err)
	}

	s.log.Info("Customer saved", zap.Int64("customer_id", saved.ID))
	return saved.Clone(), nil
}

// DeleteCustomer removes a customer. Orders referencing it are left untouched.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return err
	}

	index := findCustomer(customers, id)
	if index < 0 {
		return &NotFoundError{Resource: "customer", ID: id}
	}

	next := make([]*models.Customer, 0, len(customers)-1)
	next = append(next, customers[:index]...)
	next = append(next, customers[index+1:]...)

	if err := s.customers.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save customers: %w", err)
	}

	s.log.Info("Customer deleted", zap.Int64("customer_id", id))
	return nil
}

func findCustomer(customers []*models.Customer, id int64) int {
	for i, c := range customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}
