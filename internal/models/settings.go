package models

import "time"

// UserSettings stores notification and appearance preferences.
type UserSettings struct {
	UserID             string    `db:"user_id" json:"user_id"`
	EmailNotifications bool      `db:"email_notifications" json:"email_notifications"`
	SlackNotifications bool      `db:"slack_notifications" json:"slack_notifications"`
	BlockerAlerts      bool      `db:"blocker_alerts" json:"blocker_alerts"`
	DailyDigest        bool      `db:"daily_digest" json:"daily_digest"`
	Appearance         string    `db:"appearance" json:"appearance"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSettings is what a user gets before they save anything.
func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		SlackNotifications: true,
		BlockerAlerts:      false,
		DailyDigest:        true,
		Appearance:         "light",
		CreatedAt:          time.Now().UTC(),
	}
}
