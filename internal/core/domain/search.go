package domain

import "time"

// SearchHit is a single ranked result constructed per query response.
// Hits are ephemeral; ordering follows the engine's relevance ranking.
type SearchHit struct {
	// Filename is the matched document's file name.
	Filename string `json:"filename"`

	// URL is the direct-download link stored with the document.
	URL string `json:"url"`

	// LastModified is the document's last-modified timestamp.
	LastModified time.Time `json:"lastModified"`

	// Score is the engine's relevance score, 0 if the engine omitted one.
	Score float64 `json:"score"`

	// Excerpt is the first highlighted content fragment, empty if none.
	Excerpt string `json:"excerpt,omitempty"`
}
