package driving

import (
	"context"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

// SearchService provides ranked full-text search to external actors.
type SearchService interface {
	// Search executes a term query over indexed documents.
	// Returns domain.ErrInvalidQuery for an empty or whitespace-only term.
	// limit <= 0 selects the default result limit.
	Search(ctx context.Context, term string, limit int) ([]domain.SearchHit, error)
}
