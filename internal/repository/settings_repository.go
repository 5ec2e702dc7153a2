package repository

import (
	"context"
	"encoding/json"

	"tailorpos/internal/models"
	"tailorpos/internal/store"
)

type settingsRepository struct {
	store store.Store
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(s store.Store) SettingsRepository {
	return &settingsRepository{store: s}
}

// Load returns the stored settings, or the defaults when none were saved
func (r *settingsRepository) Load(ctx context.Context) (*models.ShopSettings, error) {
	doc, found, err := readDocument(ctx, r.store, SettingsKey)
	if err != nil {
		return nil, err
	}
	if !found {
		settings := models.DefaultShopSettings()
		return &settings, nil
	}

	return decodeSettings(SettingsKey, doc.Data)
}

// Save overwrites the settings
func (r *settingsRepository) Save(ctx context.Context, settings *models.ShopSettings) error {
	return writeDocument(ctx, r.store, SettingsKey, settings)
}

func decodeSettings(key string, data json.RawMessage) (*models.ShopSettings, error) {
	var settings models.ShopSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, &CorruptDataError{Key: key, Err: err}
	}
	return &settings, nil
}
