package handler

import (
	"net/http"

	"tailorpos/internal/models"
	"tailorpos/internal/service"
)

// CustomerHandler handles HTTP requests for customer operations
type CustomerHandler struct {
	customerService *service.CustomerService
	orderService    *service.OrderService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, orderService *service.OrderService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		orderService:    orderService,
	}
}

// List handles GET /customers?q=
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.ListCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, customers)
}

// Create handles POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if !decodeJSON(w, r, &customer) {
		return
	}
	customer.ID = 0

	saved, err := h.customerService.SaveCustomer(r.Context(), &customer)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, saved)
}

// GetByID handles GET /customers/{id}
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, customer)
}

// Update handles PUT /customers/{id}. The path id wins over any id in the body.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var customer models.Customer
	if !decodeJSON(w, r, &customer) {
		return
	}
	customer.ID = id

	saved, err := h.customerService.SaveCustomer(r.Context(), &customer)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, saved)
}

// Delete handles DELETE /customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), id); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// Orders handles GET /customers/{id}/orders
func (h *CustomerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	orders, err := h.orderService.CustomerOrders(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, orders)
}
