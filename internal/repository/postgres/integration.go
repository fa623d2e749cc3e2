package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/repository"
)

// IntegrationRepository implements repository.IntegrationRepository using PostgreSQL.
type IntegrationRepository struct {
	db *sqlx.DB
}

// NewIntegrationRepository creates a new PostgreSQL integration repository.
func NewIntegrationRepository(db *sqlx.DB) *IntegrationRepository {
	return &IntegrationRepository{db: db}
}

var _ repository.IntegrationRepository = (*IntegrationRepository)(nil)

// Upsert saves an integration keyed by (user, platform), overwriting any
// existing row so reconnecting refreshes the stored tokens.
func (r *IntegrationRepository) Upsert(ctx context.Context, integration *models.Integration) error {
	if integration.ID == "" {
		integration.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	integration.CreatedAt = now
	integration.UpdatedAt = now

	query := `
		INSERT INTO integrations (id, user_id, platform, access_token, refresh_token,
			team_id, team_name, workspace_id, workspace_name, created_at, updated_at)
		VALUES (:id, :user_id, :platform, :access_token, :refresh_token,
			:team_id, :team_name, :workspace_id, :workspace_name, :created_at, :updated_at)
		ON CONFLICT (user_id, platform) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			team_id = EXCLUDED.team_id,
			team_name = EXCLUDED.team_name,
			workspace_id = EXCLUDED.workspace_id,
			workspace_name = EXCLUDED.workspace_name,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, integration); err != nil {
		return fmt.Errorf("failed to upsert integration: %w", err)
	}
	return nil
}

// Get retrieves the integration for a (user, platform) pair. Returns
// (nil, nil) when the user has not connected the platform.
func (r *IntegrationRepository) Get(ctx context.Context, userID, platform string) (*models.Integration, error) {
	var integration models.Integration
	query := `
		SELECT id, user_id, platform, access_token, refresh_token,
			team_id, team_name, workspace_id, workspace_name, created_at, updated_at
		FROM integrations
		WHERE user_id = $1 AND platform = $2
	`

	err := r.db.GetContext(ctx, &integration, query, userID, platform)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get integration: %w", err)
	}

	return &integration, nil
}

// Delete removes the integration for a (user, platform) pair.
func (r *IntegrationRepository) Delete(ctx context.Context, userID, platform string) error {
	query := `DELETE FROM integrations WHERE user_id = $1 AND platform = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, platform); err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	return nil
}
