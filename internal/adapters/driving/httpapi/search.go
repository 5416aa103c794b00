package httpapi

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// handleSearch serves GET /api/search?q=<term>. An empty term is the
// caller's fault (400); any backend failure is reported as an opaque 500
// with the cause logged, never echoed to the client.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	term := r.URL.Query().Get("q")
	hits, err := h.Search.Search(r.Context(), term, 0)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			h.writeError(w, http.StatusBadRequest, "Search term is required")
			return
		}
		cid, _ := GetCorrelationID(r.Context())
		logger.Warn("search failed (cid=%s): %v", cid, err)
		h.writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	if hits == nil {
		hits = []domain.SearchHit{}
	}
	h.writeJSON(w, http.StatusOK, hits)
}
