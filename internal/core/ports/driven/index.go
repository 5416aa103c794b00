package driven

import (
	"context"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

// DocumentIndex provides full-text index operations.
// Backed by bleve for BM25 keyword search with highlighting.
type DocumentIndex interface {
	// Upsert writes or overwrites the document at its ID. The write is
	// visible to queries as soon as Upsert returns.
	Upsert(ctx context.Context, doc domain.IndexedDocument) error

	// Search runs a multi-field match query over content and filename and
	// returns hits in the engine's relevance-ranked order, with the first
	// highlighted content fragment attached as the excerpt.
	Search(ctx context.Context, term string, limit int) ([]domain.SearchHit, error)

	// Count returns the number of indexed documents.
	Count() (uint64, error)

	// Close releases index resources.
	Close() error
}
