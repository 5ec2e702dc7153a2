package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"tailorpos/internal/models"
	"tailorpos/internal/repository"
	"tailorpos/internal/service"
	"tailorpos/internal/testutil"
)

var testClock = func() time.Time {
	return time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)
}

type fixture struct {
	store     *testutil.MockStore
	publisher *testutil.MockPublisher
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	settings  repository.SettingsRepository
	sequence  *repository.Sequence

	orderSvc    *service.OrderService
	customerSvc *service.CustomerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := testutil.NewMockStore()
	mu := &sync.Mutex{}
	f := &fixture{
		store:     s,
		publisher: testutil.NewMockPublisher(),
		orders:    repository.NewOrderRepository(s),
		customers: repository.NewCustomerRepository(s),
		settings:  repository.NewSettingsRepository(s),
		sequence:  repository.NewCustomerSequence(s),
	}
	f.orderSvc = service.NewOrderService(mu, f.orders, f.customers, f.sequence, f.publisher, zap.NewNop())
	f.orderSvc.SetClock(testClock)
	f.customerSvc = service.NewCustomerService(mu, f.customers, f.sequence, zap.NewNop())
	return f
}

func (f *fixture) seedCustomers(t *testing.T, customers ...*models.Customer) {
	t.Helper()
	testutil.AssertNoError(t, f.customers.Save(context.Background(), customers))
}

func (f *fixture) seedOrders(t *testing.T, orders ...*models.Order) {
	t.Helper()
	testutil.AssertNoError(t, f.orders.Save(context.Background(), orders))
}

// newSaveRequest builds a form submission for the test customer
func newSaveRequest() *service.SaveOrderRequest {
	order := testutil.NewTestOrder(0, 0)
	customer := testutil.NewTestCustomer()
	return &service.SaveOrderRequest{
		OrderDate:         order.OrderDate,
		DeliveryDate:      order.DeliveryDate,
		Details:           order.Details,
		Measurements:      customer.Measurements.Standard,
		LooseMeasurements: customer.Measurements.Loose,
		Payment:           order.Payment,
		Customer: service.CustomerDescriptor{
			Name:  customer.Name,
			Phone: customer.Phone,
		},
	}
}
