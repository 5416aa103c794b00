package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrAuthConfig indicates required refresh credential fields are absent.
	// Fatal at startup; no refresh exchange is attempted.
	ErrAuthConfig = errors.New("auth configuration incomplete")

	// ErrTokenRefreshFailed indicates the refresh exchange failed.
	// Fatal to the calling operation, not retried internally.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrEnumeration indicates the remote listing failed.
	// Aborts the sync run: partial enumeration would silently under-index.
	ErrEnumeration = errors.New("enumeration failed")

	// ErrFetch indicates a single file could not be downloaded or decoded.
	// Per-file: the orchestrator skips the file and continues the batch.
	ErrFetch = errors.New("fetch failed")

	// ErrIndexWrite indicates a single document write failed.
	// Per-file, skipped exactly like fetch failures.
	ErrIndexWrite = errors.New("index write failed")

	// ErrInvalidQuery indicates an empty or absent search term.
	// Surfaced to the boundary as a client error.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSyncInProgress indicates a sync run is already in flight.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrIndexUnavailable indicates the search index is not configured.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
