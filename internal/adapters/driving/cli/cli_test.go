package cli

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

type stubSearchService struct {
	hits []domain.SearchHit
	err  error

	gotTerm  string
	gotLimit int
}

func (s *stubSearchService) Search(_ context.Context, term string, limit int) ([]domain.SearchHit, error) {
	s.gotTerm = term
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	if strings.TrimSpace(term) == "" {
		return nil, domain.ErrInvalidQuery
	}
	return s.hits, nil
}

type stubSyncOrchestrator struct {
	report  *domain.SyncReport
	err     error
	last    *domain.SyncReport
	lastErr error

	gotRoot string
}

func (s *stubSyncOrchestrator) Sync(_ context.Context, root string) (*domain.SyncReport, error) {
	s.gotRoot = root
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubSyncOrchestrator) Running() bool { return false }

func (s *stubSyncOrchestrator) LastReport(context.Context) (*domain.SyncReport, error) {
	if s.lastErr != nil {
		return nil, s.lastErr
	}
	return s.last, nil
}

func testReport() *domain.SyncReport {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.SyncReport{
		ID:         "run-1",
		Root:       "/notes",
		StartedAt:  started,
		FinishedAt: started.Add(12 * time.Second),
		Indexed:    4,
		Skipped:    1,
		Skips: []domain.SkipRecord{
			{Path: "/notes/bad.txt", Stage: domain.StageFetch, Reason: "timeout"},
		},
	}
}

// setupTestServices injects stub services and returns a cleanup that
// restores the unconfigured state and flag defaults.
func setupTestServices(search *stubSearchService, sync *stubSyncOrchestrator) func() {
	if search == nil {
		search = &stubSearchService{}
	}
	if sync == nil {
		sync = &stubSyncOrchestrator{report: testReport()}
	}
	SetServices(search, sync, "/notes")
	return func() {
		searchService = nil
		syncOrchestrator = nil
		configuredRoot = ""
		searchLimit = 20
		searchJSON = false
		syncRoot = ""
		syncLast = false
		_ = syncCmd.Flags().Set("root", "")
		syncCmd.Flags().Lookup("root").Changed = false
		syncCmd.Flags().Lookup("last").Changed = false
	}
}

// executeCommand runs the root command with args and captures output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
