package service_test

import (
	"errors"
	"testing"

	"tailorpos/internal/models"
	"tailorpos/internal/service"
	"tailorpos/internal/testutil"
)

func fixedID(id int64) (func() (int64, error), *int) {
	calls := 0
	return func() (int64, error) {
		calls++
		return id, nil
	}, &calls
}

func TestReconcileCustomer_CreatesUnknownPhone(t *testing.T) {
	existing := testutil.NewTestCustomerWithID(7)
	customers := []*models.Customer{existing}
	snapshot := testutil.NewTestCustomer().Measurements
	newID, calls := fixedID(8)

	rec, err := service.ReconcileCustomer(customers, service.CustomerDescriptor{Name: "Faisal", Phone: "0559999999"}, snapshot, newID)

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Created, true)
	testutil.AssertEqual(t, rec.Updated, false)
	testutil.AssertEqual(t, *calls, 1)
	testutil.AssertEqual(t, rec.Customer.ID, int64(8))
	testutil.AssertEqual(t, rec.Customer.Notes, "")
	testutil.AssertEqual(t, rec.Customer.Measurements, snapshot)
	testutil.AssertEqual(t, len(rec.Customers), 2)
	testutil.AssertEqual(t, rec.Customers[0], rec.Customer)
	testutil.AssertEqual(t, rec.Customers[1], existing)
	testutil.AssertEqual(t, len(customers), 1)
}

func TestReconcileCustomer_UnchangedMatch(t *testing.T) {
	existing := testutil.NewTestCustomer()
	customers := []*models.Customer{existing}
	newID, calls := fixedID(99)

	rec, err := service.ReconcileCustomer(customers,
		service.CustomerDescriptor{Name: existing.Name, Phone: existing.Phone},
		existing.Measurements, newID)

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Changed(), false)
	testutil.AssertEqual(t, rec.Customer, existing)
	testutil.AssertEqual(t, *calls, 0)
}

func TestReconcileCustomer_UpdatesOnDifference(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(desc *service.CustomerDescriptor, snapshot *models.MeasurementProfile)
	}{
		{
			name:   "name differs",
			mutate: func(desc *service.CustomerDescriptor, snapshot *models.MeasurementProfile) { desc.Name = "Ahmed A. Al-Harbi" },
		},
		{
			name:   "standard measurement differs",
			mutate: func(desc *service.CustomerDescriptor, snapshot *models.MeasurementProfile) { snapshot.Standard.Chest = "46" },
		},
		{
			name:   "loose measurement differs",
			mutate: func(desc *service.CustomerDescriptor, snapshot *models.MeasurementProfile) { snapshot.Loose.Wrist = "7" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			existing := testutil.NewTestCustomer()
			other := testutil.NewTestCustomerWithID(2)
			customers := []*models.Customer{other, existing}

			desc := service.CustomerDescriptor{Name: existing.Name, Phone: existing.Phone}
			snapshot := existing.Measurements
			tc.mutate(&desc, &snapshot)

			rec, err := service.ReconcileCustomer(customers, desc, snapshot, func() (int64, error) {
				t.Fatal("Expected no new id for an existing phone")
				return 0, nil
			})

			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, rec.Updated, true)
			testutil.AssertEqual(t, rec.Customer.ID, existing.ID)
			testutil.AssertEqual(t, rec.Customer.Name, desc.Name)
			testutil.AssertEqual(t, rec.Customer.Measurements, snapshot)
			testutil.AssertEqual(t, rec.Customer.Notes, existing.Notes)
			testutil.AssertEqual(t, rec.Customers[1], rec.Customer)
			testutil.AssertEqual(t, rec.Customers[0], other)

			// input is untouched
			testutil.AssertEqual(t, customers[1], existing)
			testutil.AssertEqual(t, existing.Name, "Ahmed Al-Harbi")
			testutil.AssertEqual(t, existing.Measurements, testutil.NewTestCustomer().Measurements)
		})
	}
}

func TestReconcileCustomer_PhoneMatchIsExact(t *testing.T) {
	existing := testutil.NewTestCustomer()
	newID, _ := fixedID(2)

	rec, err := service.ReconcileCustomer([]*models.Customer{existing},
		service.CustomerDescriptor{Name: existing.Name, Phone: " " + existing.Phone},
		existing.Measurements, newID)

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Created, true)
}

func TestReconcileCustomer_RejectsBlankIdentity(t *testing.T) {
	testCases := []struct {
		name        string
		desc        service.CustomerDescriptor
		expectedMsg string
	}{
		{name: "blank name", desc: service.CustomerDescriptor{Name: "  ", Phone: "0550000001"}, expectedMsg: "validation error: customer name is required"},
		{name: "blank phone", desc: service.CustomerDescriptor{Name: "Ahmed", Phone: "\t"}, expectedMsg: "validation error: customer phone is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newID, calls := fixedID(1)

			_, err := service.ReconcileCustomer(nil, tc.desc, models.MeasurementProfile{}, newID)

			var validationErr *service.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError but got %v", err)
			}
			testutil.AssertError(t, err, tc.expectedMsg)
			testutil.AssertEqual(t, *calls, 0)
		})
	}
}

func TestReconcileCustomer_IDFailure(t *testing.T) {
	_, err := service.ReconcileCustomer(nil,
		service.CustomerDescriptor{Name: "Ahmed", Phone: "0550000001"},
		models.MeasurementProfile{},
		func() (int64, error) { return 0, errors.New("store unavailable") })

	testutil.AssertError(t, err, "store unavailable")
}
