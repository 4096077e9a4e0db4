// ABOUTME: SnapshotStore persists the chunk index as one JSON file
// ABOUTME: Saves are atomic (temp file + rename); loads never fail the caller
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/harper/bedrock/internal/models"
)

// SnapshotStore reads and writes the context store snapshot file. The
// file is a single human-diffable JSON document; rebuilds replace it
// whole, never merge into it.
type SnapshotStore struct {
	path string
}

// New creates a store for the given snapshot file path.
func New(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Path returns the snapshot file location.
func (s *SnapshotStore) Path() string { return s.path }

// Load reads the persisted snapshot. A missing or corrupt file returns an
// empty snapshot and no error: the caller reads that as "rebuild
// required", serving requests is never blocked by a bad store file.
func (s *SnapshotStore) Load() *models.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: reading context store %s: %v", s.path, err)
		}
		return models.EmptySnapshot()
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("Warning: context store %s is corrupt, treating as empty: %v", s.path, err)
		return models.EmptySnapshot()
	}
	return &snap
}

// Save writes the snapshot atomically: the full document goes to a temp
// file in the same directory, then a rename swaps it in. Readers see
// either the old or the new complete snapshot, never a partial write.
func (s *SnapshotStore) Save(snap *models.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".context_store-*.json")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
