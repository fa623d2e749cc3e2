package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teampulse/teampulse-backend/internal/email"
	"github.com/teampulse/teampulse-backend/internal/models"
)

// DigestService renders and sends the daily summary email.
type DigestService struct {
	mailer      *email.Client
	frontendURL string
	tmpl        *template.Template
	log         *logrus.Entry
}

// NewDigestService creates a digest service.
func NewDigestService(mailer *email.Client, frontendURL string) *DigestService {
	return &DigestService{
		mailer:      mailer,
		frontendURL: frontendURL,
		tmpl:        template.Must(template.New("digest").Parse(digestTemplate)),
		log:         logrus.WithField("component", "digest"),
	}
}

type digestData struct {
	Date        string
	Summaries   []models.Summary
	FrontendURL string
}

// RenderHTML produces the digest body for a set of summaries.
func (s *DigestService) RenderHTML(summaries []models.Summary, date time.Time) (string, error) {
	var buf bytes.Buffer
	err := s.tmpl.Execute(&buf, digestData{
		Date:        date.Format("Monday, January 2, 2006"),
		Summaries:   summaries,
		FrontendURL: s.frontendURL,
	})
	if err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}

// SendDaily emails the digest to one user. When no mail provider is
// configured the send is skipped with a warning, not an error.
func (s *DigestService) SendDaily(ctx context.Context, userEmail string, summaries []models.Summary) error {
	if !s.mailer.IsConfigured() {
		s.log.Warn("mail provider not configured, skipping digest")
		return nil
	}

	now := time.Now()
	html, err := s.RenderHTML(summaries, now)
	if err != nil {
		return err
	}

	subject := "Daily Summary - " + now.Format("1/2/2006")
	id, err := s.mailer.SendHTML(ctx, userEmail, subject, html)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"message_id": id,
		"summaries":  len(summaries),
	}).Info("daily digest sent")
	return nil
}

const digestTemplate = `<!DOCTYPE html>
<html>
  <body style="margin:0;padding:0;background-color:#f3f4f6;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;color:#111827;">
    <div style="max-width:600px;margin:0 auto;background-color:white;padding:40px;">
      <h1 style="margin:0 0 8px 0;font-size:28px;">Daily Summary</h1>
      <p style="margin:0 0 24px 0;color:#6b7280;font-size:16px;">{{.Date}}</p>
      {{if .Summaries}}
      <h2 style="margin:0 0 16px 0;font-size:20px;">Channel Discussions</h2>
      {{range .Summaries}}
      <div style="margin-bottom:24px;padding:16px;background-color:#f9fafb;border-radius:8px;border-left:4px solid #3b82f6;">
        <h3 style="margin:0 0 8px 0;font-size:16px;font-weight:600;">#{{.ChannelName}}</h3>
        <p style="margin:0 0 12px 0;color:#6b7280;font-size:14px;">{{.Summary}}</p>
        {{if .KeyTopics}}
        <p style="margin:0 0 6px 0;color:#374151;font-size:13px;font-weight:600;">Key Topics:</p>
        <ul style="margin:0 0 12px 0;padding-left:20px;color:#6b7280;font-size:13px;">
          {{range .KeyTopics}}<li>{{.}}</li>{{end}}
        </ul>
        {{end}}
        {{if .Blockers}}
        <p style="margin:0 0 6px 0;color:#dc2626;font-size:13px;font-weight:600;">Blockers:</p>
        <ul style="margin:0;padding-left:20px;color:#6b7280;font-size:13px;">
          {{range .Blockers}}<li>{{.}}</li>{{end}}
        </ul>
        {{end}}
      </div>
      {{end}}
      {{else}}
      <p style="color:#6b7280;font-size:14px;">No new summaries today.</p>
      {{end}}
      <div style="border-top:1px solid #e5e7eb;padding-top:24px;margin-top:32px;">
        <p style="margin:0;color:#6b7280;font-size:12px;">
          <a href="{{.FrontendURL}}/app/summaries" style="color:#3b82f6;text-decoration:none;">View all summaries</a>
        </p>
      </div>
    </div>
  </body>
</html>`
