// ABOUTME: Snapshot model, the persisted context store contents
// ABOUTME: A snapshot is replaced whole on rebuild, never merged in place
package models

import "time"

// SnapshotVersion is the current on-disk snapshot format version.
const SnapshotVersion = 1

// Snapshot is the full contents of the context store: every indexed chunk
// plus build metadata. Readers treat snapshots as immutable; a rebuild
// produces a new snapshot and swaps it in whole.
type Snapshot struct {
	Version int       `json:"version"`
	BuiltAt time.Time `json:"built_at"`

	// Embedder names the embedder the keys were produced with, so query
	// keys are generated in the same key space at retrieval time.
	Embedder string `json:"embedder,omitempty"`

	Chunks []Chunk `json:"chunks"`
}

// EmptySnapshot returns a snapshot with no chunks. Callers treat an empty
// snapshot as "rebuild required", never as an error.
func EmptySnapshot() *Snapshot {
	return &Snapshot{Version: SnapshotVersion}
}

// Empty reports whether the snapshot holds no chunks.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Chunks) == 0
}

// Sources returns the distinct document identifiers in store order.
func (s *Snapshot) Sources() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Chunks))
	var out []string
	for _, c := range s.Chunks {
		if !seen[c.Source] {
			seen[c.Source] = true
			out = append(out, c.Source)
		}
	}
	return out
}
