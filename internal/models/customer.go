package models

import (
	"fmt"
	"strings"
)

// Customer represents a customer of the shop.
// Phone is the natural key: at most one customer should exist per phone.
type Customer struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Phone        string             `json:"phone"`
	Notes        string             `json:"notes"`
	Measurements MeasurementProfile `json:"measurements"`
}

// Validate checks the fields required on every customer form
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("customer name is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("customer phone is required")
	}
	return nil
}

// Clone returns an independent copy of the customer
func (c *Customer) Clone() *Customer {
	clone := *c
	return &clone
}

// Matches reports whether the customer name contains term (case-insensitive)
// or the phone contains term verbatim
func (c *Customer) Matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) ||
		strings.Contains(c.Phone, term)
}
