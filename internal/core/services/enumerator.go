package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// Enumerator lists remote storage entries and filters them to the
// supported document type.
type Enumerator struct {
	storage   driven.StorageClient
	extension string
}

// NewEnumerator creates an enumerator filtering to the given file extension.
// The suffix match is case-sensitive: ".txt" does not match "C.TXT".
func NewEnumerator(storage driven.StorageClient, extension string) *Enumerator {
	return &Enumerator{
		storage:   storage,
		extension: extension,
	}
}

// ListDocuments recursively lists files under root and returns those whose
// name carries the configured extension, preserving provider order.
// A listing failure wraps domain.ErrEnumeration and aborts the caller's run.
func (e *Enumerator) ListDocuments(ctx context.Context, root string) ([]domain.StorageEntry, error) {
	entries, err := e.storage.ListEntriesRecursive(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("%w: list %q: %w", domain.ErrEnumeration, root, err)
	}

	docs := make([]domain.StorageEntry, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name, e.extension) {
			logger.Debug("Skipping non-document entry: %s", entry.Path)
			continue
		}
		docs = append(docs, entry)
	}

	logger.Debug("Enumerated %d entries, %d documents under %q", len(entries), len(docs), root)
	return docs, nil
}
