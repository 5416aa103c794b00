// Package dropbox implements the StorageClient port over the official
// Dropbox HTTP API via the community SDK. All calls go through a token
// bucket rate limiter and authenticate with a bearer token injected per
// request by the oauth2 transport.
package dropbox

import (
	"context"
	"fmt"
	"io"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/sharing"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/dropsearch/internal/adapters/driven/oauth"
	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// Ensure Client implements the StorageClient interface.
var _ driven.StorageClient = (*Client)(nil)

// Client is the Dropbox storage adapter.
type Client struct {
	files   files.Client
	sharing sharing.Client
	limiter *RateLimiter
}

// NewClient creates a Dropbox client whose requests carry tokens from the
// given provider. Tokens are fetched per request through the oauth2
// transport, so a mid-run refresh is picked up transparently.
func NewClient(ctx context.Context, provider driven.TokenProvider, limits RateLimitConfig) *Client {
	httpClient := oauth2.NewClient(ctx, oauth.NewTokenSource(ctx, provider))
	cfg := dropbox.Config{
		LogLevel: dropbox.LogOff,
		Client:   httpClient,
	}

	return &Client{
		files:   files.New(cfg),
		sharing: sharing.New(cfg),
		limiter: NewRateLimiter(limits),
	}
}

// ListEntriesRecursive lists all files under root in provider order,
// following pagination cursors until exhausted.
func (c *Client) ListEntriesRecursive(ctx context.Context, root string) ([]domain.StorageEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	arg := files.NewListFolderArg(apiPath(root))
	arg.Recursive = true

	res, err := c.files.ListFolder(arg)
	if err != nil {
		return nil, fmt.Errorf("list folder %q: %w", root, err)
	}

	entries := collectFileEntries(nil, res.Entries)
	for res.HasMore {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		res, err = c.files.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, fmt.Errorf("list folder continue: %w", err)
		}
		entries = collectFileEntries(entries, res.Entries)
	}

	logger.Debug("Dropbox listing returned %d file entries", len(entries))
	return entries, nil
}

// DownloadBytes opens the raw content of the file at path.
func (c *Client) DownloadBytes(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	_, content, err := c.files.Download(files.NewDownloadArg(path))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return content, nil
}

// ListSharedLinks returns the URLs of existing shared links for path.
func (c *Client) ListSharedLinks(ctx context.Context, path string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	arg := sharing.NewListSharedLinksArg()
	arg.Path = path

	res, err := c.sharing.ListSharedLinks(arg)
	if err != nil {
		return nil, fmt.Errorf("list shared links %s: %w", path, err)
	}

	urls := make([]string, 0, len(res.Links))
	for _, link := range res.Links {
		if url := sharedLinkURL(link); url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}

// CreateSharedLink creates a public shared link for path and returns its URL.
func (c *Client) CreateSharedLink(ctx context.Context, path string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	res, err := c.sharing.CreateSharedLinkWithSettings(sharing.NewCreateSharedLinkWithSettingsArg(path))
	if err != nil {
		return "", fmt.Errorf("create shared link %s: %w", path, err)
	}

	url := sharedLinkURL(res)
	if url == "" {
		return "", fmt.Errorf("create shared link %s: response carried no URL", path)
	}
	return url, nil
}

// apiPath maps the conventional "/" root to the empty string the Dropbox
// API expects for the account root.
func apiPath(root string) string {
	if root == "/" {
		return ""
	}
	return root
}
