package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

// StorageClient is the remote storage capability surface the sync pipeline
// consumes. Implemented by the Dropbox adapter.
type StorageClient interface {
	// ListEntriesRecursive lists all files under root, in provider order.
	// Folders are not returned. The listing handles pagination internally.
	ListEntriesRecursive(ctx context.Context, root string) ([]domain.StorageEntry, error)

	// DownloadBytes opens the raw content of a file for reading.
	// The caller owns the returned reader and must close it.
	DownloadBytes(ctx context.Context, path string) (io.ReadCloser, error)

	// ListSharedLinks returns the public URLs of existing shared links for
	// a path, in provider order. Empty slice when none exist.
	ListSharedLinks(ctx context.Context, path string) ([]string, error)

	// CreateSharedLink creates a durable public link for a path and returns
	// its URL.
	CreateSharedLink(ctx context.Context, path string) (string, error)
}
