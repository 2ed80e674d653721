package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"satnam/internal/lnurl/invoice"
	"satnam/internal/platform/config"
	platformRedis "satnam/internal/platform/redis"
	"satnam/internal/resolver/store"
	"satnam/internal/routing/membership"
)

// newArtifactStore picks the artifact backend: Postgres when configured,
// then Redis, then the in-memory store for development.
func newArtifactStore(ctx context.Context, cfg config.Config, redisClient *platformRedis.Client) (store.ArtifactStore, *pgxpool.Pool, error) {
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		return store.NewPostgres(pool), pool, nil
	}
	if redisClient != nil {
		return store.NewRedis(redisClient.Client), nil, nil
	}
	return store.NewMemory(), nil, nil
}

// newMembershipVerifier uses Redis when available. The in-memory fallback
// starts empty, so without Redis every sender is treated as a non-member and
// the internal ledger rail is never offered.
func newMembershipVerifier(redisClient *platformRedis.Client) membership.Verifier {
	if redisClient != nil {
		return membership.NewRedis(redisClient.Client)
	}
	return membership.NewMemory()
}

func invoiceSigner(cfg config.Config) (*invoice.Signer, error) {
	return invoice.NewSigner(cfg.NodeKey, cfg.CurrencyPrefix)
}
