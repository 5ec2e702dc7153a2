package service

import (
	"fmt"

	"tailorpos/internal/models"
)

// Financials are the amounts derived from an order's details and payment.
// They are never stored; every view recomputes them.
type Financials struct {
	FabricCost  models.Money `json:"fabricCost"`
	SubTotal    models.Money `json:"subTotal"`
	TotalAmount models.Money `json:"totalAmount"`
	Remaining   models.Money `json:"remaining"`

	// Overpaid is set when the deposit exceeds the total, leaving a negative remaining
	Overpaid bool `json:"overpaid"`
	// DiscountExceedsSubtotal is set when the discount makes the total negative
	DiscountExceedsSubtotal bool `json:"discountExceedsSubtotal"`
}

// ComputeFinancials derives the order totals. Quantity is used as given and negative
// results are reported as-is.
func ComputeFinancials(details models.OrderDetails, payment models.Payment) Financials {
	fabricCost := details.PricePerThobe.Times(details.Quantity)
	subTotal := fabricCost + payment.Extra
	total := subTotal - payment.Discount
	remaining := total - payment.Deposit

	return Financials{
		FabricCost:              fabricCost,
		SubTotal:                subTotal,
		TotalAmount:             total,
		Remaining:               remaining,
		Overpaid:                remaining < 0,
		DiscountExceedsSubtotal: payment.Discount > subTotal,
	}
}

// FinancialsRequest is the input of a standalone financials computation
type FinancialsRequest struct {
	Quantity      int          `json:"quantity"`
	PricePerThobe models.Money `json:"pricePerThobe"`
	Extra         models.Money `json:"extra"`
	Discount      models.Money `json:"discount"`
	Deposit       models.Money `json:"deposit"`
}

// Validate bounds the quantity so the computed totals cannot overflow
func (r *FinancialsRequest) Validate() error {
	if r.Quantity > models.MaxQuantity || r.Quantity < -models.MaxQuantity {
		return &ValidationError{Message: fmt.Sprintf("quantity cannot exceed %d", models.MaxQuantity)}
	}
	return nil
}

// Compute runs ComputeFinancials on the request
func (r *FinancialsRequest) Compute() Financials {
	return ComputeFinancials(
		models.OrderDetails{Quantity: r.Quantity, PricePerThobe: r.PricePerThobe},
		models.Payment{Extra: r.Extra, Discount: r.Discount, Deposit: r.Deposit},
	)
}
