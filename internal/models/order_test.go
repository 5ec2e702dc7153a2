package models_test

import (
	"strings"
	"testing"

	"tailorpos/internal/models"
	"tailorpos/internal/testutil"
)

func TestOrder_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(o *models.Order)
		expectedMsg string
	}{
		{name: "valid order", mutate: func(o *models.Order) {}},
		{name: "unknown status", mutate: func(o *models.Order) { o.Status = "Shipped" }, expectedMsg: "invalid status"},
		{name: "unknown fabric", mutate: func(o *models.Order) { o.Details.Fabric = "Silk" }, expectedMsg: "invalid fabric"},
		{name: "unknown collar", mutate: func(o *models.Order) { o.Details.Collar = "Mandarin" }, expectedMsg: "invalid collar"},
		{name: "unknown cuffs", mutate: func(o *models.Order) { o.Details.Cuffs = "French" }, expectedMsg: "invalid cuffs"},
		{name: "unknown pockets", mutate: func(o *models.Order) { o.Details.Pockets = "None" }, expectedMsg: "invalid pockets"},
		{name: "unknown stitching", mutate: func(o *models.Order) { o.Details.Stitching = "Double" }, expectedMsg: "invalid stitching"},
		{name: "zero quantity", mutate: func(o *models.Order) { o.Details.Quantity = 0 }, expectedMsg: "quantity must be at least 1"},
		{name: "quantity over limit", mutate: func(o *models.Order) { o.Details.Quantity = models.MaxQuantity + 1 }, expectedMsg: "quantity cannot exceed 10000"},
		{name: "negative price", mutate: func(o *models.Order) { o.Details.PricePerThobe = -1 }, expectedMsg: "price per thobe"},
		{name: "negative deposit", mutate: func(o *models.Order) { o.Payment.Deposit = -1 }, expectedMsg: "payment amounts"},
		{name: "bad order date", mutate: func(o *models.Order) { o.OrderDate = "18/10/2026" }, expectedMsg: "invalid order date"},
		{name: "bad delivery date", mutate: func(o *models.Order) { o.DeliveryDate = "soon" }, expectedMsg: "invalid delivery date"},
		{name: "empty delivery date", mutate: func(o *models.Order) { o.DeliveryDate = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := testutil.NewTestOrder(1, 1)
			tc.mutate(order)

			err := order.Validate()
			if tc.expectedMsg == "" {
				testutil.AssertNoError(t, err)
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q but got nil", tc.expectedMsg)
			}
			testutil.AssertContains(t, err.Error(), tc.expectedMsg)
		})
	}
}

func TestOrder_CloneIsIndependent(t *testing.T) {
	order := testutil.NewTestOrder(1, 1)
	clone := order.Clone()
	clone.Measurements.Chest = "99"

	if order.Measurements.Chest == "99" {
		t.Error("Expected clone to not share measurement data with the original")
	}
}

func TestOrder_GarmentDescription(t *testing.T) {
	order := testutil.NewTestOrder(1, 1)
	testutil.AssertEqual(t, order.GarmentDescription(), "Custom Thobe - Korean Cotton, Round, Cufflinks")
}

func TestCustomer_Validate(t *testing.T) {
	customer := testutil.NewTestCustomer()
	testutil.AssertNoError(t, customer.Validate())

	customer.Name = "   "
	err := customer.Validate()
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Errorf("Expected name validation error but got %v", err)
	}

	customer = testutil.NewTestCustomer()
	customer.Phone = ""
	err = customer.Validate()
	if err == nil || !strings.Contains(err.Error(), "phone is required") {
		t.Errorf("Expected phone validation error but got %v", err)
	}
}

func TestCustomer_Matches(t *testing.T) {
	customer := testutil.NewTestCustomer()

	testutil.AssertEqual(t, customer.Matches("ahmed"), true)
	testutil.AssertEqual(t, customer.Matches("0550"), true)
	testutil.AssertEqual(t, customer.Matches("khalid"), false)
	testutil.AssertEqual(t, customer.Matches(""), true)
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, status := range models.OrderStatuses {
		testutil.AssertEqual(t, status.IsValid(), true)
	}
	testutil.AssertEqual(t, models.OrderStatus("new order").IsValid(), false)
	testutil.AssertEqual(t, models.OrderStatusSewing.InProgress(), true)
	testutil.AssertEqual(t, models.OrderStatusReadyForPickup.InProgress(), false)
}
