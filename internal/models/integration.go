package models

import (
	"database/sql"
	"time"
)

// Platform names accepted by the integration store.
const (
	PlatformSlack = "slack"
	PlatformAsana = "asana"
)

// Integration holds a user's connection to a third-party platform.
// One row per (user, platform); reconnecting overwrites the row.
type Integration struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"user_id"`
	Platform      string         `db:"platform" json:"platform"`
	AccessToken   string         `db:"access_token" json:"-"`
	RefreshToken  sql.NullString `db:"refresh_token" json:"-"`
	TeamID        sql.NullString `db:"team_id" json:"team_id,omitempty"`
	TeamName      sql.NullString `db:"team_name" json:"team_name,omitempty"`
	WorkspaceID   sql.NullString `db:"workspace_id" json:"workspace_id,omitempty"`
	WorkspaceName sql.NullString `db:"workspace_name" json:"workspace_name,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
