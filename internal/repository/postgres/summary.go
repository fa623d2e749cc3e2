package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/teampulse/teampulse-backend/internal/blockers"
	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/repository"
)

// SummaryRepository implements repository.SummaryRepository using PostgreSQL.
type SummaryRepository struct {
	db *sqlx.DB
}

// NewSummaryRepository creates a new PostgreSQL summary repository.
func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

var _ repository.SummaryRepository = (*SummaryRepository)(nil)
var _ blockers.SummaryStore = (*SummaryRepository)(nil)

// Create inserts a new summary record. Blockers and key topics are fixed at
// this point; only the blocker_status overlay changes afterwards.
func (r *SummaryRepository) Create(ctx context.Context, summary *models.Summary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	summary.CreatedAt = now
	summary.UpdatedAt = now
	if summary.KeyTopics == nil {
		summary.KeyTopics = pq.StringArray{}
	}
	if summary.Blockers == nil {
		summary.Blockers = pq.StringArray{}
	}

	query := `
		INSERT INTO summaries (id, channel_id, channel_name, team_id, summary, key_topics, blockers,
			message_count, time_period_start, time_period_end, created_at, updated_at)
		VALUES (:id, :channel_id, :channel_name, :team_id, :summary, :key_topics, :blockers,
			:message_count, :time_period_start, :time_period_end, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, summary); err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	return nil
}

// GetSummary retrieves a summary by ID.
func (r *SummaryRepository) GetSummary(ctx context.Context, id string) (*models.Summary, error) {
	var summary models.Summary
	query := `
		SELECT id, channel_id, channel_name, team_id, summary, key_topics, blockers, blocker_status,
			message_count, time_period_start, time_period_end, created_at, updated_at
		FROM summaries
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &summary, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, blockers.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return &summary, nil
}

// ListByTeam retrieves the newest summaries for a team.
func (r *SummaryRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]models.Summary, error) {
	if limit <= 0 {
		limit = 10
	}

	var summaries []models.Summary
	query := `
		SELECT id, channel_id, channel_name, team_id, summary, key_topics, blockers, blocker_status,
			message_count, time_period_start, time_period_end, created_at, updated_at
		FROM summaries
		WHERE team_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	if err := r.db.SelectContext(ctx, &summaries, query, teamID, limit); err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return summaries, nil
}

// ListWithBlockersByTeam retrieves every summary for a team that detected at
// least one blocker, newest first with id as the deterministic tiebreak.
func (r *SummaryRepository) ListWithBlockersByTeam(ctx context.Context, teamID string) ([]models.Summary, error) {
	var summaries []models.Summary
	query := `
		SELECT id, channel_id, channel_name, team_id, summary, key_topics, blockers, blocker_status,
			message_count, time_period_start, time_period_end, created_at, updated_at
		FROM summaries
		WHERE team_id = $1 AND cardinality(blockers) > 0
		ORDER BY created_at DESC, id DESC
	`

	if err := r.db.SelectContext(ctx, &summaries, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to list summaries with blockers: %w", err)
	}
	return summaries, nil
}

// UpdateBlockerStatus replaces the whole blocker_status column in a single
// statement and bumps updated_at.
func (r *SummaryRepository) UpdateBlockerStatus(ctx context.Context, id string, overlay []byte) error {
	query := `
		UPDATE summaries
		SET blocker_status = $2, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, overlay)
	if err != nil {
		return fmt.Errorf("failed to update blocker status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update blocker status: %w", err)
	}
	if rows == 0 {
		return blockers.ErrNotFound
	}
	return nil
}
