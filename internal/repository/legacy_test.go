package repository_test

import (
	"context"
	"errors"
	"testing"

	"tailorpos/internal/repository"
	"tailorpos/internal/testutil"
)

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewMockStore()

	dump := []byte(`{
		"thobe_pos_customers": "[{\"id\":1718000000000,\"name\":\"Saad\",\"phone\":\"0551234567\",\"notes\":\"\",\"measurements\":{\"standard\":{},\"loose\":{}}}]",
		"thobe_pos_orders": [{"id": 3, "orderDate": "2024-06-10", "status": "Ready for Pickup",
			"details": {"fabric": "Korean Cotton", "collar": "Round", "cuffs": "Simple", "pockets": "Standard Chest",
				"stitching": "Hidden", "quantity": 2, "pricePerThobe": 150},
			"payment": {"deposit": 50, "discount": 0, "extra": 0, "paymentMethod": "Cash"},
			"customerId": 1718000000000}],
		"thobe_pos_settings": {"shopName": "Al Noor", "shopPhone": "", "shopAddress": "", "vatNumber": ""}
	}`)

	result, err := repository.NewImporter(s).Import(ctx, dump)

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, result.Customers, 1)
	testutil.AssertEqual(t, result.Orders, 1)
	testutil.AssertEqual(t, result.Settings, true)
	testutil.AssertEqual(t, result.LastCustomerID, int64(1718000000000))

	next, err := repository.NewCustomerSequence(s).Next(ctx, 0)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, next, int64(1718000000001))

	settings, err := repository.NewSettingsRepository(s).Load(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, settings.ShopName, "Al Noor")
}

func TestImporter_RejectsCorruptDumpWithoutWriting(t *testing.T) {
	s := testutil.NewMockStore()

	dump := []byte(`{
		"thobe_pos_customers": [],
		"thobe_pos_orders": [{"id": 1, "status": "Lost", "details": {}}]
	}`)

	_, err := repository.NewImporter(s).Import(context.Background(), dump)

	var corrupt *repository.CorruptDataError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Expected CorruptDataError but got %v", err)
	}
	testutil.AssertEqual(t, s.SetCalls(), 0)
}
