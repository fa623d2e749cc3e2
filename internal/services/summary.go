package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/repository"
	"github.com/teampulse/teampulse-backend/internal/slack"
	"github.com/teampulse/teampulse-backend/internal/summarizer"
)

// ErrNotConnected is returned when the user has no integration for the
// platform an operation needs.
var ErrNotConnected = errors.New("integration not connected")

// MessagingSource is the slice of the Slack client the pipeline uses.
type MessagingSource interface {
	ChannelInfo(ctx context.Context, token, channelID string) (*slack.Channel, error)
	RecentMessages(ctx context.Context, token, channelID string, hours int) ([]slack.Message, error)
}

// SummaryService runs the fetch -> summarize -> persist pipeline.
type SummaryService struct {
	summaries    repository.SummaryRepository
	integrations repository.IntegrationRepository
	source       MessagingSource
	client       summarizer.Client
	log          *logrus.Entry
}

// NewSummaryService creates the summary pipeline service.
func NewSummaryService(
	summaries repository.SummaryRepository,
	integrations repository.IntegrationRepository,
	source MessagingSource,
	client summarizer.Client,
) *SummaryService {
	return &SummaryService{
		summaries:    summaries,
		integrations: integrations,
		source:       source,
		client:       client,
		log:          logrus.WithField("component", "summary"),
	}
}

// GenerateForChannel summarizes the channel's last `hours` hours and
// persists the result. An empty window is benign: it returns (nil, nil)
// and nothing is stored. A summarizer failure propagates; there is no
// retry here.
func (s *SummaryService) GenerateForChannel(ctx context.Context, userID, channelID string, hours int) (*models.Summary, error) {
	integration, err := s.integrations.Get(ctx, userID, models.PlatformSlack)
	if err != nil {
		return nil, err
	}
	if integration == nil {
		return nil, ErrNotConnected
	}

	if hours <= 0 {
		hours = 24
	}

	channel, err := s.source.ChannelInfo(ctx, integration.AccessToken, channelID)
	if err != nil {
		return nil, err
	}

	messages, err := s.source.RecentMessages(ctx, integration.AccessToken, channelID, hours)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		s.log.WithFields(logrus.Fields{
			"channel_id": channelID,
			"hours":      hours,
		}).Info("no messages in window, skipping summary")
		return nil, nil
	}

	input := make([]summarizer.Message, len(messages))
	for i, msg := range messages {
		input[i] = summarizer.Message{User: msg.User, Text: msg.Text}
	}

	result, err := s.client.Summarize(ctx, input, channel.Name)
	if err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	summary := &models.Summary{
		ChannelID:       channelID,
		ChannelName:     channel.Name,
		TeamID:          integration.TeamID.String,
		Summary:         result.Summary,
		KeyTopics:       result.KeyTopics,
		Blockers:        result.Blockers,
		MessageCount:    len(messages),
		TimePeriodStart: end.Add(-time.Duration(hours) * time.Hour),
		TimePeriodEnd:   end,
	}

	if err := s.summaries.Create(ctx, summary); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"summary_id": summary.ID,
		"channel":    channel.Name,
		"blockers":   len(summary.Blockers),
	}).Info("summary created")

	return summary, nil
}

// ListForUser returns the newest summaries for the user's Slack team. A
// user with no Slack integration gets an empty list, not an error.
func (s *SummaryService) ListForUser(ctx context.Context, userID string, limit int) ([]models.Summary, error) {
	integration, err := s.integrations.Get(ctx, userID, models.PlatformSlack)
	if err != nil {
		return nil, err
	}
	if integration == nil {
		return []models.Summary{}, nil
	}

	summaries, err := s.summaries.ListByTeam(ctx, integration.TeamID.String, limit)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.Summary{}
	}
	return summaries, nil
}
