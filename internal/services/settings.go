package services

import (
	"context"

	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/repository"
)

// SettingsService reads and writes per-user preferences.
type SettingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a settings service.
func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the user's settings, falling back to defaults for users who
// never saved any.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := models.DefaultSettings(userID)
		return &defaults, nil
	}
	return settings, nil
}

// Update upserts the user's settings.
func (s *SettingsService) Update(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error) {
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
