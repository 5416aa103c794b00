package driving

import (
	"context"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

// SyncOrchestrator coordinates document synchronisation from remote storage
// into the search index.
type SyncOrchestrator interface {
	// Sync runs one synchronisation pass over the given remote root.
	// A completed run returns a report (possibly with skipped files);
	// enumeration failure aborts the run with an error and no report.
	// Returns domain.ErrSyncInProgress if a run is already in flight.
	Sync(ctx context.Context, root string) (*domain.SyncReport, error)

	// Running reports whether a run is currently in flight.
	Running() bool

	// LastReport returns the most recent persisted run report.
	LastReport(ctx context.Context) (*domain.SyncReport, error)
}
