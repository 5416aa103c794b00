package driven

import (
	"context"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

// ReportStore persists sync run reports.
type ReportStore interface {
	// Save stores a finished report.
	Save(ctx context.Context, report domain.SyncReport) error

	// Latest returns the most recently started report.
	// Returns domain.ErrNotFound when no run has been recorded.
	Latest(ctx context.Context) (*domain.SyncReport, error)

	// Close releases store resources.
	Close() error
}
