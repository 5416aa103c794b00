package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

func newTestStore(t *testing.T) *ReportStore {
	t.Helper()
	store, err := NewReportStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testReport(startedAt time.Time) domain.SyncReport {
	return domain.SyncReport{
		ID:         uuid.NewString(),
		Root:       "/notes",
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(30 * time.Second),
		Indexed:    4,
		Skipped:    1,
		Skips: []domain.SkipRecord{
			{Path: "/notes/bad.txt", Stage: domain.StageFetch, Reason: "timeout"},
		},
	}
}

func TestReportStore_SaveAndLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := testReport(time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Latest(ctx)
	require.NoError(t, err)

	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, report.Root, got.Root)
	assert.Equal(t, report.Indexed, got.Indexed)
	assert.Equal(t, report.Skipped, got.Skipped)
	require.Len(t, got.Skips, 1)
	assert.Equal(t, "/notes/bad.txt", got.Skips[0].Path)
	assert.Equal(t, domain.StageFetch, got.Skips[0].Stage)
	assert.True(t, got.StartedAt.Equal(report.StartedAt))
}

func TestReportStore_LatestPicksMostRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := testReport(time.Now().UTC().Add(-time.Hour))
	newer := testReport(time.Now().UTC())
	require.NoError(t, store.Save(ctx, newer))
	require.NoError(t, store.Save(ctx, older))

	got, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
}

func TestReportStore_LatestEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := NewReportStore(path)
	require.NoError(t, err)
	report := testReport(time.Now().UTC())
	require.NoError(t, store.Save(ctx, report))
	require.NoError(t, store.Close())

	store, err = NewReportStore(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
}

func TestReportStore_NoSkips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := domain.SyncReport{
		ID:         uuid.NewString(),
		Root:       "",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
		Indexed:    2,
	}
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Skipped)
	assert.Empty(t, got.Skips)
}
