package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryBackend keeps the last saved snapshot in memory. Saved snapshots are
// deep-copied so later mutations by the caller do not leak in.
type MemoryBackend struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load returns a copy of the last saved snapshot.
func (b *MemoryBackend) Load(_ context.Context) (*Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(b.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save stores a copy of snap.
func (b *MemoryBackend) Save(_ context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.data = data
	b.saves++
	b.mu.Unlock()
	return nil
}

// Saves returns how many times Save succeeded.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

// Close is a no-op.
func (b *MemoryBackend) Close() error { return nil }
