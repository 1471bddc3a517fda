package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	vehiclesFile     = "vehicles.json"
	transactionsFile = "transactions.json"
)

// Snapshots persists the mirror's collections as whole-file JSON snapshots
// in a data directory, one entry per collection. Every mutation rewrites
// the full collection; there are no delta writes.
type Snapshots struct {
	dir string
}

func NewSnapshots(dir string) (*Snapshots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Snapshots{dir: dir}, nil
}

// Read unmarshals the named snapshot into out. Returns ok=false when the
// snapshot does not exist yet.
func (s *Snapshots) Read(name string, out any) (bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return true, nil
}

// Write replaces the named snapshot wholesale. The write goes through a
// temp file and rename so a crash never leaves a half-written snapshot.
func (s *Snapshots) Write(name string, in any) error {
	raw, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot %s: %w", name, err)
	}
	return nil
}
