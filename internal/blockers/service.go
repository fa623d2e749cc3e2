// Package blockers maintains the per-summary resolution overlay for
// detected blockers. The overlay is an index-aligned array stored in the
// summary's blocker_status column: entry i tracks blockers[i], and a
// missing entry means the blocker is still active.
package blockers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/teampulse/teampulse-backend/internal/models"
)

// SummaryStore is the persistence surface the reconciliation service needs.
// *postgres.SummaryRepository satisfies it.
type SummaryStore interface {
	GetSummary(ctx context.Context, id string) (*models.Summary, error)
	UpdateBlockerStatus(ctx context.Context, id string, overlay []byte) error
	ListWithBlockersByTeam(ctx context.Context, teamID string) ([]models.Summary, error)
}

// Service applies blocker resolutions against summary records.
type Service struct {
	store  SummaryStore
	log    *logrus.Entry
	strict bool
}

// Option configures a Service.
type Option func(*Service)

// WithStrictIndex makes Resolve reject indexes beyond the summary's real
// blockers list. Off by default: the historical behavior is to grow the
// overlay without cross-checking blockers, and callers may rely on
// pre-provisioning status slots.
func WithStrictIndex() Option {
	return func(s *Service) { s.strict = true }
}

// NewService creates a reconciliation service over the given store.
func NewService(store SummaryStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   logrus.WithField("component", "blockers"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve marks the blocker at blockIndex resolved and returns the full
// updated overlay. The overlay is default-filled with active entries up to
// blockIndex, then the slot is overwritten with the caller's resolution.
// resolvedAt is stored verbatim; the caller controls the recorded time.
//
// The write replaces the whole overlay column in one statement, so a lone
// caller sees no partial state. Two concurrent resolves on the same summary
// race read-modify-write and the last writer wins for the entire array.
func (s *Service) Resolve(ctx context.Context, summaryID string, blockIndex int, resolvedBy, resolvedAt string) ([]Entry, error) {
	if summaryID == "" {
		return nil, fmt.Errorf("%w: summaryId required", ErrInvalidArgument)
	}
	if resolvedBy == "" {
		return nil, fmt.Errorf("%w: resolvedBy required", ErrInvalidArgument)
	}
	if blockIndex < 0 {
		return nil, fmt.Errorf("%w: blockIndex must be >= 0", ErrInvalidArgument)
	}

	summary, err := s.store.GetSummary(ctx, summaryID)
	if err != nil {
		return nil, err
	}

	if s.strict && blockIndex >= len(summary.Blockers) {
		return nil, fmt.Errorf("%w: blockIndex %d beyond %d blockers", ErrInvalidArgument, blockIndex, len(summary.Blockers))
	}

	overlay, state := DecodeOverlay(summary.BlockerStatus)
	if state == OverlayMalformed {
		s.log.WithField("summary_id", summaryID).Warn("stored blocker_status is malformed, starting from empty")
	}

	for len(overlay) <= blockIndex {
		overlay = append(overlay, Entry{Status: StatusActive})
	}
	overlay[blockIndex] = Entry{
		Status:     StatusResolved,
		ResolvedAt: &resolvedAt,
		ResolvedBy: &resolvedBy,
	}

	encoded, err := EncodeOverlay(overlay)
	if err != nil {
		return nil, fmt.Errorf("encode blocker status: %w", err)
	}
	if err := s.store.UpdateBlockerStatus(ctx, summaryID, encoded); err != nil {
		return nil, err
	}

	return overlay, nil
}

// Status returns the stored overlay as-is. It does not default-fill:
// indexes never written are simply absent, and readers treat absence as
// active.
func (s *Service) Status(ctx context.Context, summaryID string) ([]Entry, error) {
	if summaryID == "" {
		return nil, fmt.Errorf("%w: summaryId required", ErrInvalidArgument)
	}

	summary, err := s.store.GetSummary(ctx, summaryID)
	if err != nil {
		return nil, err
	}

	overlay, state := DecodeOverlay(summary.BlockerStatus)
	if state == OverlayMalformed {
		s.log.WithField("summary_id", summaryID).Warn("stored blocker_status is malformed, returning empty")
	}
	return overlay, nil
}

// ListActiveByTeam returns every summary for the team that detected at
// least one blocker, newest first. Resolution state is not filtered here;
// it lives in each record's overlay.
func (s *Service) ListActiveByTeam(ctx context.Context, teamID string) ([]models.Summary, error) {
	if teamID == "" {
		return nil, fmt.Errorf("%w: teamId required", ErrInvalidArgument)
	}
	return s.store.ListWithBlockersByTeam(ctx, teamID)
}
