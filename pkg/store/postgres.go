package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend stores the snapshot as a JSONB document in a single-row
// table.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend connects to dsn, pings the server and creates the
// snapshot table if needed.
func NewPostgresBackend(ctx context.Context, dsn string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	b := &PostgresBackend{pool: pool}
	if err := b.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

// Migrate creates the snapshot table if it doesn't exist.
func (b *PostgresBackend) Migrate(ctx context.Context) error {
	_, err := b.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS mockario_snapshot (
			id         SMALLINT PRIMARY KEY,
			data       JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate snapshot table: %w", err)
	}
	return nil
}

// Load reads the snapshot row. A missing row yields a nil snapshot.
func (b *PostgresBackend) Load(ctx context.Context) (*Snapshot, error) {
	var data []byte
	err := b.pool.QueryRow(ctx, `SELECT data FROM mockario_snapshot WHERE id = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if err := checkVersion(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save upserts the snapshot row.
func (b *PostgresBackend) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = b.pool.Exec(ctx,
		`INSERT INTO mockario_snapshot (id, data, updated_at)
		 VALUES (1, $1, NOW())
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		data,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Close closes the pool.
func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
