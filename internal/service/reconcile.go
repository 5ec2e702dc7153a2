package service

import (
	"strings"

	"tailorpos/internal/models"
)

// CustomerDescriptor identifies the customer an order form was filled in for.
// ID is only informational; the phone decides which customer the order belongs to.
type CustomerDescriptor struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Validate checks that name and phone are not blank
func (d *CustomerDescriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Message: "customer name is required"}
	}
	if strings.TrimSpace(d.Phone) == "" {
		return &ValidationError{Message: "customer phone is required"}
	}
	return nil
}

// Reconciliation is the outcome of resolving an order's customer
type Reconciliation struct {
	// Customer is the canonical customer the order references
	Customer *models.Customer
	// Customers is the collection to persist; it is the input slice when nothing changed
	Customers []*models.Customer
	Created   bool
	Updated   bool
}

// Changed reports whether the customer collection has to be saved
func (r *Reconciliation) Changed() bool {
	return r.Created || r.Updated
}

// ReconcileCustomer resolves the customer of an order by exact phone match.
// A match whose name or measurement profile differs from the submission is overwritten
// with the submitted values; no match creates a customer at the front of the collection.
// The input slice and its customers are never modified.
func ReconcileCustomer(
	customers []*models.Customer,
	desc CustomerDescriptor,
	snapshot models.MeasurementProfile,
	newID func() (int64, error),
) (*Reconciliation, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	for i, existing := range customers {
		if existing.Phone != desc.Phone {
			continue
		}

		if existing.Name == desc.Name && existing.Measurements == snapshot {
			return &Reconciliation{Customer: existing, Customers: customers}, nil
		}

		updated := existing.Clone()
		updated.Name = desc.Name
		updated.Measurements = snapshot

		next := make([]*models.Customer, len(customers))
		copy(next, customers)
		next[i] = updated

		return &Reconciliation{Customer: updated, Customers: next, Updated: true}, nil
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created := &models.Customer{
		ID:           id,
		Name:         desc.Name,
		Phone:        desc.Phone,
		Measurements: snapshot,
	}

	next := make([]*models.Customer, 0, len(customers)+1)
	next = append(next, created)
	next = append(next, customers...)

	return &Reconciliation{Customer: created, Customers: next, Created: true}, nil
}

// maxCustomerID returns the largest id in the collection, or 0
func maxCustomerID(customers []*models.Customer) int64 {
	var highest int64
	for _, c := range customers {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest
}

// nextOrderID returns 1 for an empty collection, otherwise the largest id plus one
func nextOrderID(orders []*models.Order) int64 {
	var highest int64
	for _, o := range orders {
		if o.ID > highest {
			highest = o.ID
		}
	}
	return highest + 1
}
