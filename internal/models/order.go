package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for order and delivery dates
const DateLayout = "2006-01-02"

// DefaultPaymentMethod is preselected on a new order
const DefaultPaymentMethod = "Cash"

// OrderDetails describes the garment being made
type OrderDetails struct {
	Fabric              Fabric    `json:"fabric"`
	Color               string    `json:"color"`
	Collar              Collar    `json:"collar"`
	Cuffs               Cuff      `json:"cuffs"`
	Pockets             Pocket    `json:"pockets"`
	Stitching           Stitching `json:"stitching"`
	Buttons             string    `json:"buttons"`
	Quantity            int       `json:"quantity"`
	PricePerThobe       Money     `json:"pricePerThobe"`
	SpecialInstructions string    `json:"specialInstructions"`
}

// Payment holds what was agreed and paid for an order
type Payment struct {
	Deposit       Money  `json:"deposit"`
	Discount      Money  `json:"discount"`
	Extra         Money  `json:"extra"`
	PaymentMethod string `json:"paymentMethod"`
}

// Order represents a garment order.
// Measurements are a snapshot taken when the order was saved; they do not
// follow later changes to the customer's profile.
type Order struct {
	ID                int64             `json:"id"`
	OrderDate         string            `json:"orderDate"`
	DeliveryDate      string            `json:"deliveryDate"`
	Status            OrderStatus       `json:"status"`
	Details           OrderDetails      `json:"details"`
	Measurements      Measurements      `json:"measurements"`
	LooseMeasurements LooseMeasurements `json:"looseMeasurements"`
	Payment           Payment           `json:"payment"`
	CustomerID        int64             `json:"customerId"`
}

// DefaultOrderDetails returns the preselected options of a new order form
func DefaultOrderDetails() OrderDetails {
	return OrderDetails{
		Fabric:    FabricJapaneseSynthetic,
		Collar:    CollarStandardSaudi,
		Cuffs:     CuffSimple,
		Pockets:   PocketStandardChest,
		Stitching: StitchingHidden,
		Quantity:  1,
	}
}

// Snapshot returns the measurement blocks of the order as a profile
func (o *Order) Snapshot() MeasurementProfile {
	return MeasurementProfile{Standard: o.Measurements, Loose: o.LooseMeasurements}
}

// Clone returns an independent copy of the order
func (o *Order) Clone() *Order {
	clone := *o
	return &clone
}

// GarmentDescription is the single invoice line for the order
func (o *Order) GarmentDescription() string {
	return fmt.Sprintf("Custom Thobe - %s, %s, %s", o.Details.Fabric, o.Details.Collar, o.Details.Cuffs)
}

// ParsedOrderDate returns the order date, or the zero time when it is unparseable
func (o *Order) ParsedOrderDate() time.Time {
	t, err := time.Parse(DateLayout, o.OrderDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ValidateCatalog checks the status and every catalog field against their option sets.
// It is applied both to submitted forms and to records read back from storage.
func (o *Order) ValidateCatalog() error {
	if !o.Status.IsValid() {
		return fmt.Errorf("invalid status %q", o.Status)
	}
	if !o.Details.Fabric.IsValid() {
		return fmt.Errorf("invalid fabric %q", o.Details.Fabric)
	}
	if !o.Details.Collar.IsValid() {
		return fmt.Errorf("invalid collar %q", o.Details.Collar)
	}
	if !o.Details.Cuffs.IsValid() {
		return fmt.Errorf("invalid cuffs %q", o.Details.Cuffs)
	}
	if !o.Details.Pockets.IsValid() {
		return fmt.Errorf("invalid pockets %q", o.Details.Pockets)
	}
	if !o.Details.Stitching.IsValid() {
		return fmt.Errorf("invalid stitching %q", o.Details.Stitching)
	}
	return nil
}

// MaxQuantity is the largest number of thobes a single order may carry
const MaxQuantity = 10000

// Validate checks a submitted order before it is saved
func (o *Order) Validate() error {
	if err := o.ValidateCatalog(); err != nil {
		return err
	}
	if o.Details.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	if o.Details.Quantity > MaxQuantity {
		return fmt.Errorf("quantity cannot exceed %d", MaxQuantity)
	}
	if o.Details.PricePerThobe.IsNegative() {
		return fmt.Errorf("price per thobe cannot be negative")
	}
	if o.Payment.Deposit.IsNegative() || o.Payment.Discount.IsNegative() || o.Payment.Extra.IsNegative() {
		return fmt.Errorf("payment amounts cannot be negative")
	}
	if _, err := time.Parse(DateLayout, o.OrderDate); err != nil {
		return fmt.Errorf("invalid order date %q: expected YYYY-MM-DD", o.OrderDate)
	}
	if o.DeliveryDate != "" {
		if _, err := time.Parse(DateLayout, o.DeliveryDate); err != nil {
			return fmt.Errorf("invalid delivery date %q: expected YYYY-MM-DD", o.DeliveryDate)
		}
	}
	return nil
}
