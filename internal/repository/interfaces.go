// Package repository defines the storage interfaces the services depend on.
package repository

import (
	"context"

	"github.com/teampulse/teampulse-backend/internal/models"
)

// SummaryRepository defines summary record storage operations.
type SummaryRepository interface {
	Create(ctx context.Context, summary *models.Summary) error
	GetSummary(ctx context.Context, id string) (*models.Summary, error)
	ListByTeam(ctx context.Context, teamID string, limit int) ([]models.Summary, error)
	ListWithBlockersByTeam(ctx context.Context, teamID string) ([]models.Summary, error)
	UpdateBlockerStatus(ctx context.Context, id string, overlay []byte) error
}

// IntegrationRepository defines third-party credential storage, keyed by
// (user, platform). Upsert overwrites on reconnect.
type IntegrationRepository interface {
	Upsert(ctx context.Context, integration *models.Integration) error
	Get(ctx context.Context, userID, platform string) (*models.Integration, error)
	Delete(ctx context.Context, userID, platform string) error
}

// SettingsRepository defines user settings storage operations.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
	Upsert(ctx context.Context, settings *models.UserSettings) error
}
