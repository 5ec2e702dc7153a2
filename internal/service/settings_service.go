package service

import (
	"context"
	"fmt"
	"sync"

	"tailorpos/internal/models"
	"tailorpos/internal/repository"
)

// SettingsService reads and overwrites the shop settings
type SettingsService struct {
	mu       *sync.Mutex
	settings repository.SettingsRepository
}

func NewSettingsService(mu *sync.Mutex, settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{mu: mu, settings: settings}
}

// GetSettings returns the stored settings or the defaults
func (s *SettingsService) GetSettings(ctx context.Context) (*models.ShopSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings.Load(ctx)
}

// SaveSettings overwrites the settings wholesale
func (s *SettingsService) SaveSettings(ctx context.Context, settings *models.ShopSettings) (*models.ShopSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	saved := *settings
	return &saved, nil
}
