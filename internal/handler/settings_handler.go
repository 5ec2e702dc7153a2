package handler

import (
	"net/http"

	"tailorpos/internal/models"
	"tailorpos/internal/service"
)

// SettingsHandler handles the shop settings singleton
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, settings)
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings models.ShopSettings
	if !decodeJSON(w, r, &settings) {
		return
	}

	saved, err := h.settingsService.SaveSettings(r.Context(), &settings)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, saved)
}
