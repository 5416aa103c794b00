package domain

import (
	"encoding/base64"
	"time"
)

// StorageEntry is a single file discovered during remote enumeration.
// Entries are read-only once produced by the enumerator.
type StorageEntry struct {
	// Path is the provider path, used as the document identity source.
	Path string

	// Name is the file name without directory components.
	Name string

	// ModifiedAt is the provider's last-modified timestamp.
	ModifiedAt time.Time
}

// IndexedDocument is the canonical representation written to the search index.
// One document exists per storage path; repeated sync runs overwrite in place.
type IndexedDocument struct {
	// ID is the deterministic identity derived from Path via DocumentID.
	ID string

	// Filename is the human-readable file name.
	Filename string

	// Content is the full UTF-8 text of the file.
	Content string

	// Path is the provider path the document was ingested from.
	Path string

	// LastModified is the provider's last-modified timestamp.
	LastModified time.Time

	// URL is the resolved direct-download link, or an unresolved:// sentinel
	// when link resolution failed for this file.
	URL string
}

// DocumentID derives the index identity for a storage path.
// The encoding is deterministic so repeated syncs upsert rather than duplicate.
func DocumentID(path string) string {
	return base64.URLEncoding.EncodeToString([]byte(path))
}

// NewIndexedDocument builds a document from an enumerated entry, its resolved
// link and its fetched content.
func NewIndexedDocument(entry StorageEntry, url, content string) IndexedDocument {
	return IndexedDocument{
		ID:           DocumentID(entry.Path),
		Filename:     entry.Name,
		Content:      content,
		Path:         entry.Path,
		LastModified: entry.ModifiedAt,
		URL:          url,
	}
}
