package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/repository"
)

// SettingsRepository implements repository.SettingsRepository using PostgreSQL.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new PostgreSQL settings repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

var _ repository.SettingsRepository = (*SettingsRepository)(nil)

// Get retrieves settings for a user. Returns (nil, nil) when the user has
// never saved settings; the service layer supplies defaults.
func (r *SettingsRepository) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	query := `
		SELECT user_id, email_notifications, slack_notifications, blocker_alerts,
			daily_digest, appearance, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	err := r.db.GetContext(ctx, &settings, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &settings, nil
}

// Upsert saves user settings, overwriting any existing row.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.UserSettings) error {
	now := time.Now().UTC()
	settings.UpdatedAt = now
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}

	query := `
		INSERT INTO user_settings (user_id, email_notifications, slack_notifications,
			blocker_alerts, daily_digest, appearance, created_at, updated_at)
		VALUES (:user_id, :email_notifications, :slack_notifications,
			:blocker_alerts, :daily_digest, :appearance, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			slack_notifications = EXCLUDED.slack_notifications,
			blocker_alerts = EXCLUDED.blocker_alerts,
			daily_digest = EXCLUDED.daily_digest,
			appearance = EXCLUDED.appearance,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
