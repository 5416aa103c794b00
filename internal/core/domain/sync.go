package domain

import "time"

// SyncStage identifies the per-file pipeline step where a skip occurred.
type SyncStage string

// Pipeline stages, in processing order.
const (
	StageResolveLink SyncStage = "resolve_link"
	StageFetch       SyncStage = "fetch"
	StageIndex       SyncStage = "index"
)

// SkipRecord captures one skipped file and why it was skipped.
type SkipRecord struct {
	// Path is the provider path of the skipped file.
	Path string `json:"path"`

	// Stage is the pipeline step that failed.
	Stage SyncStage `json:"stage"`

	// Reason is the underlying error message.
	Reason string `json:"reason"`
}

// SyncReport is the outcome of one sync run. It makes the batch result
// testable independently of logs: a completed run carries counts and skip
// details, an aborted run produces no report at all.
type SyncReport struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// Root is the remote folder the run enumerated.
	Root string `json:"root"`

	// StartedAt is when enumeration began.
	StartedAt time.Time `json:"startedAt"`

	// FinishedAt is when the last entry was processed.
	FinishedAt time.Time `json:"finishedAt"`

	// Indexed is the count of documents upserted.
	Indexed int `json:"indexed"`

	// Skipped is the count of entries that failed a per-file stage.
	Skipped int `json:"skipped"`

	// Skips holds one record per skipped entry, in enumeration order.
	Skips []SkipRecord `json:"skips,omitempty"`
}
