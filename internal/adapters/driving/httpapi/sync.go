package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// handleSync serves POST /api/sync: triggers an on-demand run in the
// background and answers 202. A run already in flight answers 409. The
// finished report is persisted by the orchestrator, not returned inline.
func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Sync.Running() {
		h.writeError(w, http.StatusConflict, "sync already in progress")
		return
	}

	cid, _ := GetCorrelationID(r.Context())
	go func() {
		// Detached from the request context: the run outlives the response.
		report, err := h.Sync.Sync(context.Background(), h.Root)
		if err != nil {
			logger.Warn("triggered sync failed (cid=%s): %v", cid, err)
			return
		}
		logger.Info("triggered sync finished (cid=%s): %d indexed, %d skipped", cid, report.Indexed, report.Skipped)
	}()

	h.writeJSON(w, http.StatusAccepted, struct {
		Status string `json:"status"`
	}{Status: "started"})
}

// handleStatus serves GET /api/status: the most recent persisted run report.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := h.Sync.LastReport(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "no sync has completed")
			return
		}
		cid, _ := GetCorrelationID(r.Context())
		logger.Warn("status lookup failed (cid=%s): %v", cid, err)
		h.writeError(w, http.StatusInternalServerError, "status unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}
