package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tailorpos/internal/models"
	"tailorpos/internal/queue"
	"tailorpos/internal/repository"
)

// NotificationPublisher queues customer notifications
type NotificationPublisher interface {
	PublishNotification(job *queue.NotificationJob) error
}

// OrderService handles order business logic
type OrderService struct {
	mu        *sync.Mutex
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	sequence  repository.IDSequence
	publisher NotificationPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service.
// mu must be shared with every other service writing the same store. publisher may be nil.
func NewOrderService(
	mu *sync.Mutex,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	sequence repository.IDSequence,
	publisher NotificationPublisher,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		mu:        mu,
		orders:    orders,
		customers: customers,
		sequence:  sequence,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// SetClock replaces the clock used for default order dates
func (s *OrderService) SetClock(now func() time.Time) {
	s.now = now
}

// Request/Response types

// SaveOrderRequest is a submitted order form. ID 0 creates a new order.
// Status is ignored on create; new orders always start as New Order.
type SaveOrderRequest struct {
	ID                int64                    `json:"id"`
	OrderDate         string                   `json:"orderDate"`
	DeliveryDate      string                   `json:"deliveryDate"`
	Status            models.OrderStatus       `json:"status"`
	Details           models.OrderDetails      `json:"details"`
	Measurements      models.Measurements      `json:"measurements"`
	LooseMeasurements models.LooseMeasurements `json:"looseMeasurements"`
	Payment           models.Payment           `json:"payment"`
	Customer          CustomerDescriptor       `json:"customer"`
}

// SaveOrderResult is the saved order with its resolved customer
type SaveOrderResult struct {
	Order           *models.Order    `json:"order"`
	Customer        *models.Customer `json:"customer"`
	CustomerCreated bool             `json:"customerCreated"`
	CustomerUpdated bool             `json:"customerUpdated"`
	Financials      Financials       `json:"financials"`
}

// OrderFilter narrows ListOrders
type OrderFilter struct {
	Query  string
	Status models.OrderStatus
}

// CustomerRef is the customer identity shown next to an order
type CustomerRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OrderView is an order with its customer and derived amounts
type OrderView struct {
	*models.Order
	Customer   *CustomerRef `json:"customer"`
	Financials Financials   `json:"financials"`
}

// SaveOrder creates or replaces an order, resolving its customer by phone first.
// The customer collection is saved before the order collection and only when it changed.
func (s *OrderService) SaveOrder(ctx context.Context, req *SaveOrderRequest) (*SaveOrderResult, error) {
	if err := req.Customer.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:                req.ID,
		OrderDate:         req.OrderDate,
		DeliveryDate:      req.DeliveryDate,
		Status:            req.Status,
		Details:           req.Details,
		Measurements:      req.Measurements,
		LooseMeasurements: req.LooseMeasurements,
		Payment:           req.Payment,
	}

	index := -1
	var previousStatus models.OrderStatus
	if req.ID != 0 {
		index = findOrder(orders, req.ID)
		if index < 0 {
			return nil, &NotFoundError{Resource: "order", ID: req.ID}
		}
		previous := orders[index]
		previousStatus = previous.Status
		if order.Status == "" {
			order.Status = previous.Status
		}
		if order.OrderDate == "" {
			order.OrderDate = previous.OrderDate
		}
	} else {
		order.Status = models.OrderStatusNew
		if order.OrderDate == "" {
			order.OrderDate = s.now().Format(models.DateLayout)
		}
	}
	if order.Payment.PaymentMethod == "" {
		order.Payment.PaymentMethod = models.DefaultPaymentMethod
	}

	if err := order.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := ReconcileCustomer(customers, req.Customer, order.Snapshot(), func() (int64, error) {
		return s.sequence.Next(ctx, maxCustomerID(customers))
	})
	if err != nil {
		return nil, err
	}

	if rec.Changed() {
		if err := s.customers.Save(ctx, rec.Customers); err != nil {
			return nil, fmt.Errorf("failed to save customers: %w", err)
		}
	}

	order.CustomerID = rec.Customer.ID

	next := make([]*models.Order, 0, len(orders)+1)
	if index < 0 {
		order.ID = nextOrderID(orders)
		next = append(next, order)
		next = append(next, orders...)
	} else {
		next = append(next, orders...)
		next[index] = order
	}

	if err := s.orders.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save orders: %w", err)
	}

	s.log.Info("Order saved",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.Bool("customer_created", rec.Created),
		zap.Bool("customer_updated", rec.Updated),
	)

	if index >= 0 && order.Status == models.OrderStatusReadyForPickup && previousStatus != models.OrderStatusReadyForPickup {
		s.notifyReady(order)
	}

	return &SaveOrderResult{
		Order:           order.Clone(),
		Customer:        rec.Customer.Clone(),
		CustomerCreated: rec.Created,
		CustomerUpdated: rec.Updated,
		Financials:      ComputeFinancials(order.Details, order.Payment),
	}, nil
}

// UpdateStatus sets the status of an order. Any status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status %q", status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return nil, err
	}

	index := findOrder(orders, id)
	if index < 0 {
		return nil, &NotFoundError{Resource: "order", ID: id}
	}

	previous := orders[index]
	if previous.Status == status {
		return previous.Clone(), nil
	}

	updated := previous.Clone()
	updated.Status = status

	next := make([]*models.Order, len(orders))
	copy(next, orders)
	next[index] = updated

	if err := s.orders.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save orders: %w", err)
	}

	s.log.Info("Order status changed",
		zap.Int64("order_id", id),
		zap.String("from", string(previous.Status)),
		zap.String("to", string(status)),
	)

	if status == models.OrderStatusReadyForPickup {
		s.notifyReady(updated)
	}

	return updated.Clone(), nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return nil, err
	}

	index := findOrder(orders, id)
	if index < 0 {
		return nil, &NotFoundError{Resource: "order", ID: id}
	}

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, err
	}

	return newOrderView(orders[index], indexCustomers(customers)), nil
}

// ListOrders returns orders in stored order (newest created first).
// Query matches the customer name (case-insensitive), the customer phone or the order id.
func (s *OrderService) ListOrders(ctx context.Context, filter OrderFilter) ([]*OrderView, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status %q", filter.Status)}
	}

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
	byID := indexCustomers(customers)

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if query != "" && !orderMatches(o, byID[o.CustomerID], query) {
			continue
		}
		views = append(views, newOrderView(o, byID))
	}

	return views, nil
}

// CustomerOrders returns the orders referencing a customer
func (s *OrderService) CustomerOrders(ctx context.Context, customerID int64) ([]*OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, err
	}
	byID := indexCustomers(customers)
	if _, ok := byID[customerID]; !ok {
		return nil, &NotFoundError{Resource: "customer", ID: customerID}
	}

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return nil, err
	}

	views := []*OrderView{}
	for _, o := range orders {
		if o.CustomerID == customerID {
			views = append(views, newOrderView(o, byID))
		}
	}

	return views, nil
}

// DeleteOrder removes an order
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return err
	}

	index := findOrder(orders, id)
	if index < 0 {
		return &NotFoundError{Resource: "order", ID: id}
	}

	next := make([]*models.Order, 0, len(orders)-1)
	next = append(next, orders[:index]...)
	next = append(next, orders[index+1:]...)

	if err := s.orders.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}

	s.log.Info("Order deleted", zap.Int64("order_id", id))
	return nil
}

// notifyReady queues a pickup notification. Failures are logged and never fail the save.
func (s *OrderService) notifyReady(order *models.Order) {
	if s.publisher == nil {
		return
	}

	job := &queue.NotificationJob{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Attempt:    1,
	}
	if err := s.publisher.PublishNotification(job); err != nil {
		s.log.Warn("Failed to queue pickup notification",
			zap.Int64("order_id", order.ID),
			zap.Error(err),
		)
	}
}

func findOrder(orders []*models.Order, id int64) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func indexCustomers(customers []*models.Customer) map[int64]*models.Customer {
	byID := make(map[int64]*models.Customer, len(customers))
	for _, c := range customers {
		// first wins, matching lookup by id in stored order
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
		}
	}
	return byID
}

func orderMatches(o *models.Order, customer *models.Customer, lowerQuery string) bool {
	if customer != nil {
		if strings.Contains(strings.ToLower(customer.Name), lowerQuery) || strings.Contains(customer.Phone, lowerQuery) {
			return true
		}
	}
	return strings.Contains(strconv.FormatInt(o.ID, 10), lowerQuery)
}

func newOrderView(o *models.Order, customers map[int64]*models.Customer) *OrderView {
	view := &OrderView{
		Order:      o.Clone(),
		Financials: ComputeFinancials(o.Details, o.Payment),
	}
	if c, ok := customers[o.CustomerID]; ok {
		view.Customer = &CustomerRef{ID: c.ID, Name: c.Name, Phone: c.Phone}
	}
	return view
}
