package services

import (
	"bytes"
	"context"
	"io"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockStorage implements driven.StorageClient.
type mockStorage struct {
	entries []domain.StorageEntry
	listErr error

	// content by path; paths in downloadErr fail instead.
	content     map[string]string
	rawContent  map[string][]byte
	downloadErr map[string]error

	links         map[string][]string
	listLinksErr  error
	createdLink   string
	createLinkErr error

	listLinkCalls   int
	createLinkCalls int
	downloadCalls   []string
}

var _ driven.StorageClient = (*mockStorage)(nil)

func (m *mockStorage) ListEntriesRecursive(_ context.Context, _ string) ([]domain.StorageEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

func (m *mockStorage) DownloadBytes(_ context.Context, path string) (io.ReadCloser, error) {
	m.downloadCalls = append(m.downloadCalls, path)
	if err, ok := m.downloadErr[path]; ok {
		return nil, err
	}
	if raw, ok := m.rawContent[path]; ok {
		return io.NopCloser(bytes.NewReader(raw)), nil
	}
	return io.NopCloser(bytes.NewReader([]byte(m.content[path]))), nil
}

func (m *mockStorage) ListSharedLinks(_ context.Context, path string) ([]string, error) {
	m.listLinkCalls++
	if m.listLinksErr != nil {
		return nil, m.listLinksErr
	}
	return m.links[path], nil
}

func (m *mockStorage) CreateSharedLink(_ context.Context, _ string) (string, error) {
	m.createLinkCalls++
	if m.createLinkErr != nil {
		return "", m.createLinkErr
	}
	return m.createdLink, nil
}

// mockIndex implements driven.DocumentIndex, storing documents by ID.
type mockIndex struct {
	docs      map[string]domain.IndexedDocument
	upsertErr map[string]error // by path
	searchRes []domain.SearchHit
	searchErr error
}

var _ driven.DocumentIndex = (*mockIndex)(nil)

func newMockIndex() *mockIndex {
	return &mockIndex{
		docs:      make(map[string]domain.IndexedDocument),
		upsertErr: make(map[string]error),
	}
}

func (m *mockIndex) Upsert(_ context.Context, doc domain.IndexedDocument) error {
	if err, ok := m.upsertErr[doc.Path]; ok {
		return err
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockIndex) Search(_ context.Context, _ string, _ int) ([]domain.SearchHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchRes, nil
}

func (m *mockIndex) Count() (uint64, error) {
	return uint64(len(m.docs)), nil
}

func (m *mockIndex) Close() error { return nil }

// mockReportStore implements driven.ReportStore.
type mockReportStore struct {
	saved   []domain.SyncReport
	saveErr error
}

var _ driven.ReportStore = (*mockReportStore)(nil)

func (m *mockReportStore) Save(_ context.Context, report domain.SyncReport) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, report)
	return nil
}

func (m *mockReportStore) Latest(_ context.Context) (*domain.SyncReport, error) {
	if len(m.saved) == 0 {
		return nil, domain.ErrNotFound
	}
	report := m.saved[len(m.saved)-1]
	return &report, nil
}

func (m *mockReportStore) Close() error { return nil }
