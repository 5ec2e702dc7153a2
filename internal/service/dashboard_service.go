package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"tailorpos/internal/models"
	"tailorpos/internal/repository"
)

const recentOrdersLimit = 5

// Dashboard holds the headline numbers of the shop
type Dashboard struct {
	MonthlyOrders    int          `json:"monthlyOrders"`
	MonthlyRevenue   models.Money `json:"monthlyRevenue"`
	OrdersInProgress int          `json:"ordersInProgress"`
	ReadyForPickup   int          `json:"readyForPickup"`
	RecentOrders     []*OrderView `json:"recentOrders"`
}

// DashboardService computes dashboard metrics from the stored collections
type DashboardService struct {
	mu        *sync.Mutex
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	now       func() time.Time
}

func NewDashboardService(
	mu *sync.Mutex,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
) *DashboardService {
	return &DashboardService{
		mu:        mu,
		orders:    orders,
		customers: customers,
		now:       time.Now,
	}
}

// SetClock replaces the clock that decides the current month
func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

// GetDashboard computes the metrics.
// Monthly figures cover non-cancelled orders dated on or after the first of the current month;
// revenue is quantity times unit price, before extras and discounts.
// In-progress and ready counts cover all orders.
func (s *DashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	d := &Dashboard{RecentOrders: []*OrderView{}}
	for _, o := range orders {
		if o.Status != models.OrderStatusCancelled && !o.ParsedOrderDate().Before(startOfMonth) {
			d.MonthlyOrders++
			d.MonthlyRevenue += o.Details.PricePerThobe.Times(o.Details.Quantity)
		}
		if o.Status.InProgress() {
			d.OrdersInProgress++
		}
		if o.Status == models.OrderStatusReadyForPickup {
			d.ReadyForPickup++
		}
	}

	recent := make([]*models.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ParsedOrderDate().After(recent[j].ParsedOrderDate())
	})
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}

	byID := indexCustomers(customers)
	for _, o := range recent {
		d.RecentOrders = append(d.RecentOrders, newOrderView(o, byID))
	}

	return d, nil
}
