// Package store persists the server's in-memory state as a single snapshot.
//
// The registry, user store, auth settings and schemas stay authoritative in
// memory; a Backend only ever sees whole snapshots. The default memory
// backend keeps the process-lifetime semantics, while file, redis and
// postgres let a server pick up where it left off after a restart.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/schema"
)

// SnapshotVersion is the format version written into every snapshot.
const SnapshotVersion = 1

// Common errors
var (
	ErrUnknownBackend  = errors.New("unknown store backend")
	ErrMissingDSN      = errors.New("store backend requires a DSN")
	ErrVersionMismatch = errors.New("unsupported snapshot version")
)

// Backend kinds.
const (
	KindMemory   = "memory"
	KindFile     = "file"
	KindRedis    = "redis"
	KindPostgres = "postgres"
)

// Snapshot is the full persisted state of a server.
type Snapshot struct {
	Version   int                 `json:"version" yaml:"version"`
	Endpoints []endpoint.Endpoint `json:"endpoints" yaml:"endpoints"`
	Users     []auth.User         `json:"users" yaml:"users"`
	Auth      auth.Settings       `json:"auth" yaml:"auth"`
	Schemas   []schema.Schema     `json:"schemas" yaml:"schemas"`
}

// Backend loads and saves snapshots.
type Backend interface {
	// Load returns the last saved snapshot, or nil if nothing was saved yet.
	Load(ctx context.Context) (*Snapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap *Snapshot) error
	// Close releases the backend's resources.
	Close() error
}

// Open returns the backend of the given kind. An empty kind selects memory.
func Open(ctx context.Context, kind, dsn string) (Backend, error) {
	switch kind {
	case "", KindMemory:
		return NewMemoryBackend(), nil
	case KindFile:
		if dsn == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingDSN, kind)
		}
		return NewFileBackend(dsn), nil
	case KindRedis:
		if dsn == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingDSN, kind)
		}
		return NewRedisBackend(ctx, dsn)
	case KindPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingDSN, kind)
		}
		return NewPostgresBackend(ctx, dsn)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}

func checkVersion(snap *Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrVersionMismatch, snap.Version)
	}
	return nil
}
