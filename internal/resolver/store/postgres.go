package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"satnam/internal/resolver/models"
	"satnam/pkg/sentinel"
)

// PostgresStore reads artifacts from PostgreSQL. The expected schema:
//
//	CREATE TABLE artifacts (
//	    lookup_key    TEXT PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    domain        TEXT NOT NULL,
//	    pubkey        TEXT NOT NULL,
//	    issued_at     TIMESTAMPTZ NOT NULL,
//	    integrity_tag TEXT NOT NULL DEFAULT ''
//	);
//
// Rows are written by the account-provisioning pipeline; this store is pure
// read I/O.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed artifact store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Fetch returns the artifact stored under lookupKey.
func (s *PostgresStore) Fetch(ctx context.Context, lookupKey string) (*models.Artifact, error) {
	const query = `
		SELECT name, domain, pubkey, issued_at, integrity_tag
		FROM artifacts
		WHERE lookup_key = $1
	`
	var artifact models.Artifact
	err := s.pool.QueryRow(ctx, query, lookupKey).Scan(
		&artifact.Name,
		&artifact.Domain,
		&artifact.PubKey,
		&artifact.IssuedAt,
		&artifact.IntegrityTag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fetch artifact: %v", sentinel.ErrUnavailable, err)
	}
	return &artifact, nil
}
