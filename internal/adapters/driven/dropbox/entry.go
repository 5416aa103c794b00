package dropbox

import (
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/sharing"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

// FileToStorageEntry converts Dropbox file metadata to a domain entry.
// The display path is used as the document identity source; ServerModified
// is the provider-side last-write timestamp.
func FileToStorageEntry(file *files.FileMetadata) domain.StorageEntry {
	return domain.StorageEntry{
		Path:       file.PathDisplay,
		Name:       file.Name,
		ModifiedAt: file.ServerModified,
	}
}

// collectFileEntries appends the file entries from a listing page to dst,
// preserving provider order. Folder and deleted entries are ignored.
func collectFileEntries(dst []domain.StorageEntry, page []files.IsMetadata) []domain.StorageEntry {
	for _, meta := range page {
		if file, ok := meta.(*files.FileMetadata); ok {
			dst = append(dst, FileToStorageEntry(file))
		}
	}
	return dst
}

// sharedLinkURL extracts the public URL from shared link metadata.
// Returns "" for link types without one.
func sharedLinkURL(link sharing.IsSharedLinkMetadata) string {
	switch l := link.(type) {
	case *sharing.FileLinkMetadata:
		return l.Url
	case *sharing.FolderLinkMetadata:
		return l.Url
	case *sharing.SharedLinkMetadata:
		return l.Url
	default:
		return ""
	}
}
