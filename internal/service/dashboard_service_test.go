package service_test

import (
	"context"
	"sync"
	"testing"

	"tailorpos/internal/models"
	"tailorpos/internal/service"
	"tailorpos/internal/testutil"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(t, testutil.NewTestCustomer())

	newOrder := func(id int64, date string, status models.OrderStatus) *models.Order {
		o := testutil.NewTestOrder(id, 1)
		o.OrderDate = date
		o.Status = status
		return o
	}
	f.seedOrders(t,
		newOrder(1, "2026-10-02", models.OrderStatusNew),
		newOrder(2, "2026-10-05", models.OrderStatusSewing),
		newOrder(3, "2026-10-10", models.OrderStatusCancelled),
		newOrder(4, "2026-09-30", models.OrderStatusFabricCutting),
		newOrder(5, "2026-10-12", models.OrderStatusReadyForPickup),
		newOrder(6, "2026-08-01", models.OrderStatusCompleted),
		newOrder(7, "2026-10-01", models.OrderStatusCompleted),
	)

	svc := service.NewDashboardService(&sync.Mutex{}, f.orders, f.customers)
	svc.SetClock(testClock)

	d, err := svc.GetDashboard(context.Background())
	testutil.AssertNoError(t, err)

	// orders 1, 2, 5, 7 at 2 x 150 each
	testutil.AssertEqual(t, d.MonthlyOrders, 4)
	testutil.AssertEqual(t, d.MonthlyRevenue, models.NewMoney(1200, 0))
	testutil.AssertEqual(t, d.OrdersInProgress, 2)
	testutil.AssertEqual(t, d.ReadyForPickup, 1)

	testutil.AssertEqual(t, len(d.RecentOrders), 5)
	expected := []int64{5, 3, 2, 1, 7}
	for i, id := range expected {
		testutil.AssertEqual(t, d.RecentOrders[i].ID, id)
	}
	testutil.AssertEqual(t, d.RecentOrders[0].Customer.Name, "Ahmed Al-Harbi")
}

func TestDashboardService_Empty(t *testing.T) {
	f := newFixture(t)
	svc := service.NewDashboardService(&sync.Mutex{}, f.orders, f.customers)

	d, err := svc.GetDashboard(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, d.MonthlyOrders, 0)
	testutil.AssertEqual(t, len(d.RecentOrders), 0)
}
