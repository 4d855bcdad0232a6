package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileBackend stores the snapshot in a single JSON or YAML file, chosen by
// extension (.yaml, .yml for YAML, otherwise JSON).
type FileBackend struct {
	path string
}

// NewFileBackend creates a FileBackend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the snapshot file path.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(b.path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the snapshot file. A missing file yields a nil snapshot.
func (b *FileBackend) Load(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if b.isYAML() {
		err = yaml.Unmarshal(data, &snap)
	} else {
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", b.path, err)
	}
	if err := checkVersion(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save writes the snapshot to a temporary file and renames it into place.
func (b *FileBackend) Save(_ context.Context, snap *Snapshot) error {
	var data []byte
	var err error
	if b.isYAML() {
		data, err = yaml.Marshal(snap)
	} else {
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (b *FileBackend) Close() error { return nil }
