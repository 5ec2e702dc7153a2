package handler

import (
	"fmt"
	"net/http"
	"time"

	"tailorpos/internal/models"
	"tailorpos/internal/service"
)

// XLSXContentType is the media type of the orders export
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderService   *service.OrderService
	invoiceService *service.InvoiceService
	exportService  *service.ExportService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orderService *service.OrderService,
	invoiceService *service.InvoiceService,
	exportService *service.ExportService,
) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
		exportService:  exportService,
	}
}

// UpdateStatusRequest is the body of PATCH /orders/{id}/status
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// List handles GET /orders?q=&status=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := service.OrderFilter{
		Query:  query.Get("q"),
		Status: models.OrderStatus(query.Get("status")),
	}

	orders, err := h.orderService.ListOrders(r.Context(), filter)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, orders)
}

// Create handles POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.SaveOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = 0

	result, err := h.orderService.SaveOrder(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, result)
}

// GetByID handles GET /orders/{id}
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, order)
}

// Update handles PUT /orders/{id}
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.SaveOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.orderService.SaveOrder(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, result)
}

// UpdateStatus handles PATCH /orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, order)
}

// Delete handles DELETE /orders/{id}
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// Invoice handles GET /orders/{id}/invoice?format=json|html
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "html" {
		WriteValidationError(w, "invalid format: must be 'json' or 'html'")
		return
	}

	invoice, err := h.invoiceService.Build(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	if format != "html" {
		WriteOK(w, invoice)
		return
	}

	page, err := invoice.RenderHTML()
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

// Export handles GET /orders/export
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportService.ExportOrdersXLSX(r.Context())
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
