package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse-backend/internal/email"
	"github.com/teampulse/teampulse-backend/internal/models"
)

func TestRenderHTML(t *testing.T) {
	svc := NewDigestService(email.NewClient("", ""), "https://app.example.com")

	html, err := svc.RenderHTML([]models.Summary{
		{
			ChannelName: "general",
			Summary:     "Shipping discussion.",
			KeyTopics:   []string{"release"},
			Blockers:    []string{"QA signoff"},
		},
	}, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Contains(t, html, "#general")
	assert.Contains(t, html, "Shipping discussion.")
	assert.Contains(t, html, "QA signoff")
	assert.Contains(t, html, "Saturday, June 15, 2024")
	assert.Contains(t, html, "https://app.example.com/app/summaries")
}

func TestRenderHTML_Empty(t *testing.T) {
	svc := NewDigestService(email.NewClient("", ""), "https://app.example.com")

	html, err := svc.RenderHTML(nil, time.Now())

	require.NoError(t, err)
	assert.Contains(t, html, "No new summaries today.")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	svc := NewDigestService(email.NewClient("", ""), "https://app.example.com")

	html, err := svc.RenderHTML([]models.Summary{
		{ChannelName: "general", Summary: `<script>alert("x")</script>`},
	}, time.Now())

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSendDaily_UnconfiguredIsNoop(t *testing.T) {
	svc := NewDigestService(email.NewClient("", ""), "https://app.example.com")

	err := svc.SendDaily(context.Background(), "user@example.com", nil)
	assert.NoError(t, err)
}
