package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tailorpos/internal/middleware"
)

// Handlers groups every resource handler mounted by NewRouter
type Handlers struct {
	Health    *HealthHandler
	Customers *CustomerHandler
	Orders    *OrderHandler
	Settings  *SettingsHandler
	Dashboard *DashboardHandler
}

// NewRouter builds the API router with its middleware chain
func NewRouter(h Handlers, log *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Chain(log)...)

	router.HandleFunc("/health", h.Health.HandleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/catalog", Catalog).Methods(http.MethodGet)
	router.HandleFunc("/financials", ComputeFinancials).Methods(http.MethodPost)
	router.HandleFunc("/dashboard", h.Dashboard.Get).Methods(http.MethodGet)

	router.HandleFunc("/settings", h.Settings.Get).Methods(http.MethodGet)
	router.HandleFunc("/settings", h.Settings.Update).Methods(http.MethodPut)

	router.HandleFunc("/customers", h.Customers.List).Methods(http.MethodGet)
	router.HandleFunc("/customers", h.Customers.Create).Methods(http.MethodPost)
	router.HandleFunc("/customers/{id}", h.Customers.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/customers/{id}", h.Customers.Update).Methods(http.MethodPut)
	router.HandleFunc("/customers/{id}", h.Customers.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/customers/{id}/orders", h.Customers.Orders).Methods(http.MethodGet)

	// /orders/export is registered before /orders/{id} so "export" is never parsed as an id
	router.HandleFunc("/orders", h.Orders.List).Methods(http.MethodGet)
	router.HandleFunc("/orders", h.Orders.Create).Methods(http.MethodPost)
	router.HandleFunc("/orders/export", h.Orders.Export).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", h.Orders.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", h.Orders.Update).Methods(http.MethodPut)
	router.HandleFunc("/orders/{id}", h.Orders.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/orders/{id}/status", h.Orders.UpdateStatus).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{id}/invoice", h.Orders.Invoice).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "ROUTE_NOT_FOUND", "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	return router
}
