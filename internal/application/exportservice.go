// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/tprmkit/internal/clock"
	"github.com/ericfisherdev/tprmkit/internal/domain/model"
	"github.com/ericfisherdev/tprmkit/internal/domain/port/driven"
)

// Export polling defaults.
const (
	DefaultExportMaxWait      = 60 * time.Second
	DefaultExportPollInterval = 2 * time.Second
)

// ExportOptions controls whether and how long Export waits for a download link.
type ExportOptions struct {
	Wait bool
	// MaxWait bounds the poll loop by wall-clock time. Zero means DefaultExportMaxWait.
	MaxWait time.Duration
	// PollInterval is the fixed sleep before each poll. Zero means DefaultExportPollInterval.
	PollInterval time.Duration
}

// ExportService triggers audit-form exports and optionally waits for the
// download link to appear in the notification feed.
type ExportService struct {
	client driven.AuditClient
	clock  clock.Clock
	logger *slog.Logger
}

// NewExportService creates an ExportService.
func NewExportService(client driven.AuditClient, c clock.Clock, logger *slog.Logger) *ExportService {
	return &ExportService{client: client, clock: c, logger: logger}
}

// Export triggers an export of the record's audit forms. Without Wait it
// returns the raw trigger response. With Wait it sleeps PollInterval, lists
// notification messages, and returns the first download_url found, repeating
// until MaxWait has elapsed. A deadline without a link is not an error: the
// result has Found == false.
func (s *ExportService) Export(ctx context.Context, id model.RecordID, opts ExportOptions) (*model.ExportResult, error) {
	trigger, err := s.client.TriggerExport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("trigger export for %s: %w", id, err)
	}

	result := &model.ExportResult{Trigger: trigger}
	if !opts.Wait {
		return result, nil
	}

	maxWait := opts.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultExportMaxWait
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultExportPollInterval
	}

	start := s.clock.Now()
	polls := 0
	for s.clock.Now().Sub(start) < maxWait {
		if err := s.clock.Sleep(ctx, interval); err != nil {
			return nil, err
		}
		polls++

		notifications, err := s.client.ListNotifications(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("poll notifications for %s export: %w", id, err)
		}

		if url, ok := findDownloadURL(notifications); ok {
			s.logger.Info("export ready", "record_id", id, "polls", polls)
			result.DownloadURL = url
			result.Found = true
			return result, nil
		}
		s.logger.Debug("export not ready", "record_id", id, "polls", polls)
	}

	s.logger.Warn("export wait deadline elapsed", "record_id", id, "max_wait", maxWait, "polls", polls)
	return result, nil
}

// findDownloadURL returns the first non-empty download_url in a notification list.
func findDownloadURL(p model.Payload) (string, bool) {
	for _, msg := range p.Notifications() {
		if url, ok := msg.String("download_url"); ok {
			return url, true
		}
	}
	return "", false
}
