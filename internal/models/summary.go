package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Summary is one generated analysis of a channel over a time window.
//
// Blockers is immutable after creation: index position is a blocker's
// identity for the lifetime of the record. Resolution state lives in the
// BlockerStatus overlay, the only field mutated post-create.
type Summary struct {
	ID              string          `db:"id" json:"id"`
	ChannelID       string          `db:"channel_id" json:"channel_id"`
	ChannelName     string          `db:"channel_name" json:"channel_name"`
	TeamID          string          `db:"team_id" json:"team_id"`
	Summary         string          `db:"summary" json:"summary"`
	KeyTopics       pq.StringArray  `db:"key_topics" json:"key_topics"`
	Blockers        pq.StringArray  `db:"blockers" json:"blockers"`
	BlockerStatus   json.RawMessage `db:"blocker_status" json:"blocker_status,omitempty"`
	MessageCount    int             `db:"message_count" json:"message_count"`
	TimePeriodStart time.Time       `db:"time_period_start" json:"time_period_start"`
	TimePeriodEnd   time.Time       `db:"time_period_end" json:"time_period_end"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
