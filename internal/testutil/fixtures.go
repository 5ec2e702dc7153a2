package testutil

import (
	"fmt"

	"tailorpos/internal/models"
)

// NewTestCustomer creates a test customer with a measurement profile
func NewTestCustomer() *models.Customer {
	return &models.Customer{
		ID:    1,
		Name:  "Ahmed Al-Harbi",
		Phone: "0550000001",
		Notes: "Prefers a loose fit",
		Measurements: models.MeasurementProfile{
			Standard: NewTestMeasurements(),
			Loose:    models.LooseMeasurements{BodyLoose: "4", Bicep: "14"},
		},
	}
}

// NewTestCustomerWithID creates a customer with specific ID and a phone derived from it
func NewTestCustomerWithID(id int64) *models.Customer {
	customer := NewTestCustomer()
	customer.ID = id
	customer.Name = fmt.Sprintf("Customer %d", id)
	customer.Phone = fmt.Sprintf("05500%05d", id)
	return customer
}

// NewTestMeasurements returns a filled standard measurement block
func NewTestMeasurements() models.Measurements {
	return models.Measurements{
		Length:       "58",
		Shoulders:    "19",
		SleeveLength: "25",
		SleeveWidth:  "8",
		Neck:         "16",
		Chest:        "44",
		Waist:        "40",
		CuffsLength:  "9",
		CuffsWidth:   "4",
		ChestPlate:   "10",
		BottomWidth:  "30",
	}
}

// NewTestOrder creates a valid order: 2 thobes at 150, extra 20, discount 30, deposit 100
func NewTestOrder(id, customerID int64) *models.Order {
	return &models.Order{
		ID:           id,
		OrderDate:    "2026-10-01",
		DeliveryDate: "2026-10-15",
		Status:       models.OrderStatusNew,
		Details: models.OrderDetails{
			Fabric:              models.FabricKoreanCotton,
			Color:               "White",
			Collar:              models.CollarRound,
			Cuffs:               models.CuffCufflinks,
			Pockets:             models.PocketStandardChest,
			Stitching:           models.StitchingHidden,
			Buttons:             "Pearl",
			Quantity:            2,
			PricePerThobe:       models.NewMoney(150, 0),
			SpecialInstructions: "Extra pocket lining",
		},
		Measurements: NewTestMeasurements(),
		Payment: models.Payment{
			Deposit:       models.NewMoney(100, 0),
			Discount:      models.NewMoney(30, 0),
			Extra:         models.NewMoney(20, 0),
			PaymentMethod: models.DefaultPaymentMethod,
		},
		CustomerID: customerID,
	}
}
