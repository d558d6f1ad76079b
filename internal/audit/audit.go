// Package audit implements a key-generation ledger: a Postgres-backed
// record of when a key pair was generated and its fingerprint, kept
// separate from (and never touching) any key or plaintext material. This
// is a pure addition on top of the core pipeline — disabling it changes
// nothing about key generation, encryption, decryption, signing, or
// verification.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Recorder is the capability the key engine's CLI driver depends on.
// Noop satisfies it when no audit database is configured.
type Recorder interface {
	RecordKeyGeneration(ctx context.Context, keyID uuid.UUID, bitLength int, fingerprint [32]byte) error
	Close()
}

// Ledger wraps a pgx connection pool for the key_generations table.
type Ledger struct {
	pool *pgxpool.Pool
}

var _ Recorder = (*Ledger)(nil)

// New connects to Postgres and returns a Ledger handle.
func New(ctx context.Context, dsn string) (*Ledger, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("audit: pinging database: %w", err)
	}
	return &Ledger{pool: pool}, nil
}

// Close releases the connection pool.
func (l *Ledger) Close() {
	l.pool.Close()
}

// RecordKeyGeneration inserts one row per generated key pair.
func (l *Ledger) RecordKeyGeneration(ctx context.Context, keyID uuid.UUID, bitLength int, fingerprint [32]byte) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO key_generations (key_id, bit_length, fingerprint) VALUES ($1, $2, $3)`,
		keyID, bitLength, fmt.Sprintf("%x", fingerprint),
	)
	if err != nil {
		return fmt.Errorf("audit: recording key generation %s: %w", keyID, err)
	}
	return nil
}

// Noop is the Recorder used when audit logging is disabled in config.
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) RecordKeyGeneration(context.Context, uuid.UUID, int, [32]byte) error { return nil }
func (Noop) Close()                                                             {}
