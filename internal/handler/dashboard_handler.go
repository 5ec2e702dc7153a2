package handler

import (
	"net/http"

	"tailorpos/internal/models"
	"tailorpos/internal/service"
)

// DashboardHandler serves the dashboard and the stateless helper endpoints
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles GET /dashboard
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, dashboard)
}

// Catalog handles GET /catalog
func Catalog(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, models.DefaultCatalog())
}

// ComputeFinancials handles POST /financials
func ComputeFinancials(w http.ResponseWriter, r *http.Request) {
	var req service.FinancialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, req.Compute())
}
