package services

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/teampulse/teampulse-backend/internal/asana"
	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/repository"
	"github.com/teampulse/teampulse-backend/internal/slack"
)

// IntegrationService does the credential bookkeeping around OAuth flows.
type IntegrationService struct {
	repo repository.IntegrationRepository
	log  *logrus.Entry
}

// NewIntegrationService creates an integration service.
func NewIntegrationService(repo repository.IntegrationRepository) *IntegrationService {
	return &IntegrationService{
		repo: repo,
		log:  logrus.WithField("component", "integrations"),
	}
}

// Get returns the user's integration for a platform, nil if not connected.
func (s *IntegrationService) Get(ctx context.Context, userID, platform string) (*models.Integration, error) {
	return s.repo.Get(ctx, userID, platform)
}

// SaveSlack stores a completed Slack OAuth exchange, overwriting any
// earlier connection.
func (s *IntegrationService) SaveSlack(ctx context.Context, userID string, res *slack.OAuthResult) error {
	integration := &models.Integration{
		UserID:      userID,
		Platform:    models.PlatformSlack,
		AccessToken: res.AccessToken,
		TeamID:      sql.NullString{String: res.TeamID, Valid: res.TeamID != ""},
		TeamName:    sql.NullString{String: res.TeamName, Valid: res.TeamName != ""},
	}
	if err := s.repo.Upsert(ctx, integration); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "team_id": res.TeamID}).Info("slack integration saved")
	return nil
}

// SaveAsana stores a completed Asana OAuth exchange along with the user's
// primary workspace.
func (s *IntegrationService) SaveAsana(ctx context.Context, userID string, res *asana.OAuthResult, workspace *asana.Workspace) error {
	integration := &models.Integration{
		UserID:       userID,
		Platform:     models.PlatformAsana,
		AccessToken:  res.AccessToken,
		RefreshToken: sql.NullString{String: res.RefreshToken, Valid: res.RefreshToken != ""},
	}
	if workspace != nil {
		integration.WorkspaceID = sql.NullString{String: workspace.GID, Valid: workspace.GID != ""}
		integration.WorkspaceName = sql.NullString{String: workspace.Name, Valid: workspace.Name != ""}
	}
	if err := s.repo.Upsert(ctx, integration); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "workspace_id": integration.WorkspaceID.String}).Info("asana integration saved")
	return nil
}

// Disconnect removes the user's integration for a platform.
func (s *IntegrationService) Disconnect(ctx context.Context, userID, platform string) error {
	if err := s.repo.Delete(ctx, userID, platform); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "platform": platform}).Info("integration disconnected")
	return nil
}
