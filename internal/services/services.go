package services

import (
	"github.com/teampulse/teampulse-backend/internal/asana"
	"github.com/teampulse/teampulse-backend/internal/blockers"
	"github.com/teampulse/teampulse-backend/internal/config"
	"github.com/teampulse/teampulse-backend/internal/email"
	"github.com/teampulse/teampulse-backend/internal/repository"
	"github.com/teampulse/teampulse-backend/internal/slack"
	"github.com/teampulse/teampulse-backend/internal/summarizer"
)

// Services holds all service instances
type Services struct {
	Summary     *SummaryService
	Blockers    *blockers.Service
	Integration *IntegrationService
	Settings    *SettingsService
	Digest      *DigestService

	Slack *slack.Client
	Asana *asana.Client
}

// NewServices creates all service instances
func NewServices(
	cfg *config.Config,
	summaryRepo repository.SummaryRepository,
	integrationRepo repository.IntegrationRepository,
	settingsRepo repository.SettingsRepository,
	summarizerClient summarizer.Client,
) *Services {
	slackClient := slack.NewClient()
	asanaClient := asana.NewClient()

	var blockerOpts []blockers.Option
	if cfg.Blockers.StrictIndex {
		blockerOpts = append(blockerOpts, blockers.WithStrictIndex())
	}

	return &Services{
		Summary:     NewSummaryService(summaryRepo, integrationRepo, slackClient, summarizerClient),
		Blockers:    blockers.NewService(summaryRepo, blockerOpts...),
		Integration: NewIntegrationService(integrationRepo),
		Settings:    NewSettingsService(settingsRepo),
		Digest:      NewDigestService(email.NewClient(cfg.Email.ResendAPIKey, cfg.Email.From), cfg.URLs.Frontend),
		Slack:       slackClient,
		Asana:       asanaClient,
	}
}
