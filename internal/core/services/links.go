package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

const (
	sharingHost = "www.dropbox.com"
	directHost  = "dl.dropboxusercontent.com"

	// PlaceholderScheme marks URLs substituted when link resolution failed.
	// Such URLs are not dereferenceable; consumers can detect them by scheme.
	PlaceholderScheme = "unresolved"
)

// LinkResolver obtains a durable public direct-download URL per file.
// At most one shared link is persisted per path on the remote provider:
// an existing link is reused, one is created otherwise.
type LinkResolver struct {
	storage driven.StorageClient
}

// NewLinkResolver creates a link resolver over the given storage client.
func NewLinkResolver(storage driven.StorageClient) *LinkResolver {
	return &LinkResolver{storage: storage}
}

// Resolve returns a direct-download URL for the entry. Provider failures do
// not abort the batch: both listing and creation failing yields a clearly
// marked placeholder URL and a warning, and processing continues.
func (r *LinkResolver) Resolve(ctx context.Context, entry domain.StorageEntry) string {
	links, err := r.storage.ListSharedLinks(ctx, entry.Path)
	if err == nil && len(links) > 0 {
		return NormalizeSharedURL(links[0])
	}
	if err != nil {
		logger.Debug("List shared links for %s: %v", entry.Path, err)
	}

	created, err := r.storage.CreateSharedLink(ctx, entry.Path)
	if err != nil {
		logger.Warn("Could not resolve link for %s, using placeholder: %v", entry.Path, err)
		return PlaceholderURL(entry.Name)
	}

	return NormalizeSharedURL(created)
}

// NormalizeSharedURL rewrites a provider sharing URL into a direct-content
// URL: the sharing domain becomes the content domain and the "preview, not
// download" query marker is stripped. URLs that fail to parse are returned
// unchanged.
func NormalizeSharedURL(shared string) string {
	u, err := url.Parse(shared)
	if err != nil {
		return shared
	}

	if u.Host == sharingHost {
		u.Host = directHost
	}

	q := u.Query()
	if q.Has("dl") {
		q.Del("dl")
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// PlaceholderURL builds the sentinel URL recorded for a file whose shared
// link could not be obtained.
func PlaceholderURL(filename string) string {
	return PlaceholderScheme + "://" + url.PathEscape(filename)
}

// IsPlaceholderURL reports whether a stored URL is a placeholder sentinel.
func IsPlaceholderURL(stored string) bool {
	return strings.HasPrefix(stored, PlaceholderScheme+"://")
}
