package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driving"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator drives one synchronisation pass: enumeration, then per
// file link resolution, content fetch and index upsert. Files are processed
// strictly one at a time in enumeration order; a per-file failure skips only
// that file, never the run.
type SyncOrchestrator struct {
	enumerator *Enumerator
	links      *LinkResolver
	fetcher    *Fetcher
	index      driven.DocumentIndex
	reports    driven.ReportStore

	// running guards the single-run-in-flight invariant.
	mu      sync.Mutex
	running bool
}

// NewSyncOrchestrator creates a sync orchestrator.
// The reports store is optional - if nil, run reports are not persisted.
func NewSyncOrchestrator(
	enumerator *Enumerator,
	links *LinkResolver,
	fetcher *Fetcher,
	index driven.DocumentIndex,
	reports driven.ReportStore,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		enumerator: enumerator,
		links:      links,
		fetcher:    fetcher,
		index:      index,
		reports:    reports,
	}
}

// Sync runs one pass over root. Enumeration failure aborts with an error and
// no report; per-file failures are recorded as skips in the returned report.
func (o *SyncOrchestrator) Sync(ctx context.Context, root string) (*domain.SyncReport, error) {
	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()

	if o.index == nil {
		return nil, domain.ErrIndexUnavailable
	}

	logger.Section("Sync Run")
	logger.Info("Starting sync under %q", root)

	report := &domain.SyncReport{
		ID:        uuid.NewString(),
		Root:      root,
		StartedAt: time.Now(),
	}

	entries, err := o.enumerator.ListDocuments(ctx, root)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o.processEntry(ctx, entry, report)
	}

	report.FinishedAt = time.Now()
	logger.Info("Sync complete: %d indexed, %d skipped", report.Indexed, report.Skipped)

	if o.reports != nil {
		// Best effort: a failed history write must not fail a completed run.
		if err := o.reports.Save(ctx, *report); err != nil {
			logger.Warn("Could not persist sync report: %v", err)
		}
	}

	return report, nil
}

// processEntry runs the per-file chain: resolve link, fetch content, upsert.
// Failures are recorded on the report and the batch continues.
func (o *SyncOrchestrator) processEntry(ctx context.Context, entry domain.StorageEntry, report *domain.SyncReport) {
	logger.Debug("Processing: %s", entry.Path)

	// Link resolution degrades to a placeholder internally and never fails
	// the entry.
	url := o.links.Resolve(ctx, entry)

	content, err := o.fetcher.FetchText(ctx, entry.Path)
	if err != nil {
		o.skip(report, entry, domain.StageFetch, err)
		return
	}

	doc := domain.NewIndexedDocument(entry, url, content)
	if err := o.index.Upsert(ctx, doc); err != nil {
		o.skip(report, entry, domain.StageIndex, fmt.Errorf("%w: %w", domain.ErrIndexWrite, err))
		return
	}

	report.Indexed++
}

func (o *SyncOrchestrator) skip(report *domain.SyncReport, entry domain.StorageEntry, stage domain.SyncStage, err error) {
	logger.Warn("Skipping %s at %s: %v", entry.Name, stage, err)
	report.Skipped++
	report.Skips = append(report.Skips, domain.SkipRecord{
		Path:   entry.Path,
		Stage:  stage,
		Reason: err.Error(),
	})
}

// LastReport returns the most recent persisted run report.
func (o *SyncOrchestrator) LastReport(ctx context.Context) (*domain.SyncReport, error) {
	if o.reports == nil {
		return nil, domain.ErrNotFound
	}
	report, err := o.reports.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load last report: %w", err)
	}
	return report, nil
}

// Running reports whether a run is currently in flight.
func (o *SyncOrchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

func (o *SyncOrchestrator) acquire() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return domain.ErrSyncInProgress
	}
	o.running = true
	return nil
}

func (o *SyncOrchestrator) release() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = false
}
