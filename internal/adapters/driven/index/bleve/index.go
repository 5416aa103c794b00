// Package bleve implements the DocumentIndex port over a bleve full-text
// index. Field typing is explicit: filename, path and url are exact-match
// keyword fields, content is analyzed text, lastModified is a date field.
// Writes are visible to queries as soon as Index returns, giving
// read-after-write consistency for upserts.
package bleve

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/highlight/highlighter/html"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// Ensure Index implements the DocumentIndex interface.
var _ driven.DocumentIndex = (*Index)(nil)

// Index is the bleve-backed document index.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
}

// Open opens the index at path, creating it with the document schema when
// absent. Safe to call on every startup: an existing index is opened
// unaltered.
func Open(path string) (*Index, error) {
	index, err := bleve.Open(path)
	if err == nil {
		logger.Debug("Opened existing index at %s", path)
		return &Index{index: index}, nil
	}

	index, err = bleve.New(path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	logger.Info("Created new index at %s", path)
	return &Index{index: index}, nil
}

// OpenInMemory creates a memory-only index with the document schema.
// Used by tests and ephemeral runs.
func OpenInMemory() (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create in-memory index: %w", err)
	}
	return &Index{index: index}, nil
}

// buildIndexMapping declares the document schema with explicit field typing.
func buildIndexMapping() mapping.IndexMapping {
	exact := bleve.NewTextFieldMapping()
	exact.Analyzer = keyword.Name

	analyzed := bleve.NewTextFieldMapping()

	date := bleve.NewDateTimeFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("filename", exact)
	doc.AddFieldMappingsAt("path", exact)
	doc.AddFieldMappingsAt("url", exact)
	doc.AddFieldMappingsAt("content", analyzed)
	doc.AddFieldMappingsAt("lastModified", date)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Upsert writes or overwrites the document at its ID.
func (i *Index) Upsert(_ context.Context, doc domain.IndexedDocument) error {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return domain.ErrIndexUnavailable
	}

	fields := map[string]any{
		"filename":     doc.Filename,
		"content":      doc.Content,
		"path":         doc.Path,
		"lastModified": doc.LastModified,
		"url":          doc.URL,
	}

	if err := i.index.Index(doc.ID, fields); err != nil {
		return fmt.Errorf("index %s: %w", doc.Path, err)
	}
	return nil
}

// Search runs a disjunction of match queries over content and filename,
// requesting highlighted fragments for content, and maps the engine's
// ranked hits to domain search hits.
func (i *Index) Search(ctx context.Context, term string, limit int) ([]domain.SearchHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return nil, domain.ErrIndexUnavailable
	}

	content := bleve.NewMatchQuery(term)
	content.SetField("content")
	filename := bleve.NewMatchQuery(term)
	filename.SetField("filename")

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(content, filename), limit, 0, false)
	req.Fields = []string{"filename", "url", "lastModified"}
	req.Highlight = bleve.NewHighlightWithStyle(html.Name)
	req.Highlight.AddField("content")

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		sh := domain.SearchHit{
			Filename: getStringField(hit.Fields, "filename"),
			URL:      getStringField(hit.Fields, "url"),
			Score:    hit.Score,
		}
		sh.LastModified = getTimeField(hit.Fields, "lastModified")
		if fragments := hit.Fragments["content"]; len(fragments) > 0 {
			sh.Excerpt = fragments[0]
		}
		hits = append(hits, sh)
	}

	return hits, nil
}

// Count returns the number of indexed documents.
func (i *Index) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return 0, domain.ErrIndexUnavailable
	}
	return i.index.DocCount()
}

// Close releases index resources. Subsequent operations fail with
// domain.ErrIndexUnavailable.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.index == nil {
		return nil
	}
	err := i.index.Close()
	i.index = nil
	return err
}

// getStringField extracts a string field from the stored fields map.
func getStringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// getTimeField extracts a date field; bleve returns stored datetimes as
// RFC3339 strings.
func getTimeField(fields map[string]any, key string) time.Time {
	s, ok := fields[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
