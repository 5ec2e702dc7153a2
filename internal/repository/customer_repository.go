package repository

import (
	"context"
	"encoding/json"

	"tailorpos/internal/models"
	"tailorpos/internal/store"
)

type customerRepository struct {
	store store.Store
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(s store.Store) CustomerRepository {
	return &customerRepository{store: s}
}

// Load returns every customer in stored order, or an empty slice when none were saved
func (r *customerRepository) Load(ctx context.Context) ([]*models.Customer, error) {
	doc, found, err := readDocument(ctx, r.store, CustomersKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*models.Customer{}, nil
	}

	return decodeCustomers(CustomersKey, doc.Data)
}

// Save overwrites the customer collection
func (r *customerRepository) Save(ctx context.Context, customers []*models.Customer) error {
	if customers == nil {
		customers = []*models.Customer{}
	}
	return writeDocument(ctx, r.store, CustomersKey, customers)
}

// decodeCustomers reads a customer array. Version 0 and 1 share the same shape.
func decodeCustomers(key string, data json.RawMessage) ([]*models.Customer, error) {
	var customers []*models.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, &CorruptDataError{Key: key, Err: err}
	}

	out := make([]*models.Customer, 0, len(customers))
	for _, c := range customers {
		if c == nil {
			continue
		}
		out = append(out, c)
	}

	return out, nil
}
