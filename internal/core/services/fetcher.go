package services

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
)

// Fetcher downloads a file's bytes and decodes them as UTF-8 text.
// Anything that is not decodable text fails fast at this boundary instead of
// propagating an untyped payload downstream.
type Fetcher struct {
	storage driven.StorageClient
}

// NewFetcher creates a content fetcher over the given storage client.
func NewFetcher(storage driven.StorageClient) *Fetcher {
	return &Fetcher{storage: storage}
}

// FetchText returns the file content at path as a string.
// Download and decode failures wrap domain.ErrFetch; the orchestrator treats
// these as per-file errors and skips the file.
func (f *Fetcher) FetchText(ctx context.Context, path string) (string, error) {
	body, err := f.storage.DownloadBytes(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %w", domain.ErrFetch, path, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", domain.ErrFetch, path, err)
	}

	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8 text", domain.ErrFetch, path)
	}

	return string(raw), nil
}
