package handler

import (
	"net/http"

	"tailorpos/internal/service"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	healthService *service.HealthChecker
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(healthService *service.HealthChecker) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthStatus, err := h.healthService.CheckHealth(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to perform health check")
		return
	}

	// a degraded queue only delays notifications, the shop keeps working
	switch healthStatus.Status {
	case service.StatusHealthy, service.StatusDegraded:
		WriteOK(w, healthStatus)
	case service.StatusUnhealthy:
		WriteJSON(w, http.StatusServiceUnavailable, healthStatus)
	default:
		WriteJSON(w, http.StatusInternalServerError, healthStatus)
	}
}
