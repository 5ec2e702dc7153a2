package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tailorpos/internal/models"
	"tailorpos/internal/repository"
	"tailorpos/internal/testutil"
)

func TestCustomerRepository_LoadMissing(t *testing.T) {
	repo := repository.NewCustomerRepository(testutil.NewMockStore())

	customers, err := repo.Load(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(customers), 0)
}

func TestCustomerRepository_SaveWritesEnvelope(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewMockStore()
	repo := repository.NewCustomerRepository(s)

	err := repo.Save(ctx, []*models.Customer{testutil.NewTestCustomer()})
	testutil.AssertNoError(t, err)

	raw, err := s.Raw(repository.CustomersKey)
	testutil.AssertNoError(t, err)
	if !strings.HasPrefix(string(raw), `{"version":1,"data":[`) {
		t.Errorf("Expected versioned envelope but got %s", raw)
	}

	customers, err := repo.Load(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(customers), 1)
	testutil.AssertEqual(t, customers[0].Name, "Ahmed Al-Harbi")
	testutil.AssertEqual(t, customers[0].Measurements, testutil.NewTestCustomer().Measurements)
}

func TestCustomerRepository_LoadLegacyArray(t *testing.T) {
	s := testutil.NewMockStore()
	s.Put(repository.CustomersKey, []byte(`[
		{"id": 1718000000000, "name": "Saad", "phone": "0551234567", "notes": "",
		 "measurements": {"standard": {"length": "57", "chest": "42"}, "loose": {"bicep": "13"}}}
	]`))

	customers, err := repository.NewCustomerRepository(s).Load(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(customers), 1)
	testutil.AssertEqual(t, customers[0].ID, int64(1718000000000))
	testutil.AssertEqual(t, customers[0].Measurements.Standard.Chest, "42")
	testutil.AssertEqual(t, customers[0].Measurements.Loose.Bicep, "13")
}

func TestCustomerRepository_LoadCorrupt(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "truncated json", value: `[{"id": 1, "name": "Sa`},
		{name: "wrong shape", value: `{"version":1,"data":{"id":1}}`},
		{name: "future version", value: `{"version":2,"data":[]}`},
		{name: "empty value", value: `   `},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := testutil.NewMockStore()
			s.Put(repository.CustomersKey, []byte(tc.value))

			_, err := repository.NewCustomerRepository(s).Load(context.Background())

			var corrupt *repository.CorruptDataError
			if !errors.As(err, &corrupt) {
				t.Fatalf("Expected CorruptDataError but got %v", err)
			}
			testutil.AssertEqual(t, corrupt.Key, repository.CustomersKey)
		})
	}
}

func TestCustomerRepository_StoreFailure(t *testing.T) {
	s := testutil.NewMockStore()
	s.GetFunc = func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("disk I/O error")
	}

	_, err := repository.NewCustomerRepository(s).Load(context.Background())

	testutil.AssertError(t, err, "failed to load thobe_pos_customers: disk I/O error")
	var corrupt *repository.CorruptDataError
	if errors.As(err, &corrupt) {
		t.Error("Expected a plain storage error, not CorruptDataError")
	}
}
