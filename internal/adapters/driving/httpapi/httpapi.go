// Package httpapi contains the HTTP delivery layer (net/http handlers) for
// dropsearch. It maps HTTP requests to the driving ports while enforcing
// method checks, error translation, and per-request correlation IDs.
// Handlers are split across files (search.go, sync.go, health.go).
package httpapi

import (
	"context"
	"net/http"

	"github.com/custodia-labs/dropsearch/internal/core/ports/driving"
)

// Handler wires HTTP endpoints to the driving services.
// It is safe for concurrent use. Zero-value is not valid; construct via New.
type Handler struct {
	Search    driving.SearchService
	Sync      driving.SyncOrchestrator
	Root      string                      // remote root passed to triggered runs
	Readiness func(context.Context) error // optional readiness probe
}

// New returns a configured Handler. readiness may be nil (always ready).
func New(search driving.SearchService, sync driving.SyncOrchestrator, root string, readiness func(context.Context) error) *Handler {
	return &Handler{Search: search, Sync: sync, Root: root, Readiness: readiness}
}

// Router constructs an http.Handler with all routes mounted and the
// correlation ID middleware applied.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", h.handleSearch)
	mux.HandleFunc("/api/sync", h.handleSync)
	mux.HandleFunc("/api/status", h.handleStatus)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/readyz", h.handleReady)
	return CorrelationIDMiddleware(mux)
}
