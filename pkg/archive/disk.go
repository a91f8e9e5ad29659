package archive

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiskStore keeps snapshots as JSON files in a directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore, creating the directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the snapshot directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the snapshot to disk.
func (s *DiskStore) Save(_ context.Context, snap *Snapshot) error {
	if !validID(snap.ID) {
		return ErrInvalidID
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(snap.ID), data, 0644)
}

// Load reads a snapshot from disk.
func (s *DiskStore) Load(_ context.Context, id string) (*Snapshot, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns the IDs of all snapshots in the directory, sorted.
func (s *DiskStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}

	sort.Strings(ids)
	return ids, nil
}

// Delete removes a snapshot file. Missing snapshots are ignored.
func (s *DiskStore) Delete(_ context.Context, id string) error {
	if !validID(id) {
		return ErrInvalidID
	}

	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
