package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driving"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultSearchLimit caps results when the caller does not specify one.
const defaultSearchLimit = 20

// SearchService executes term queries against the document index.
// Query construction and response mapping live in the index adapter; this
// service owns validation and keeps HTTP concerns out of the query path.
type SearchService struct {
	index driven.DocumentIndex
}

// NewSearchService creates a search service over the given index.
func NewSearchService(index driven.DocumentIndex) *SearchService {
	return &SearchService{index: index}
}

// Search runs a multi-field match query and returns hits in the engine's
// relevance-ranked order. The core does not re-sort.
func (s *SearchService) Search(ctx context.Context, term string, limit int) ([]domain.SearchHit, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrInvalidQuery
	}
	if s.index == nil {
		return nil, domain.ErrIndexUnavailable
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	logger.Section("Search Execution")
	logger.Debug("Query: %q, limit: %d", term, limit)

	hits, err := s.index.Search(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Debug("Results: %d", len(hits))
	return hits, nil
}
