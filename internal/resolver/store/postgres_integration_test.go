//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"satnam/internal/resolver/keyring"
	"satnam/internal/resolver/store"
	"satnam/pkg/sentinel"
	"satnam/pkg/testutil/containers"
)

const artifactsDDL = `
CREATE TABLE IF NOT EXISTS artifacts (
    lookup_key    TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    domain        TEXT NOT NULL,
    pubkey        TEXT NOT NULL,
    issued_at     TIMESTAMPTZ NOT NULL,
    integrity_tag TEXT NOT NULL DEFAULT ''
)`

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	keys     *keyring.Keyring
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.postgres.Exec(s.T(), artifactsDDL)
	s.store = store.NewPostgres(s.postgres.Pool)

	keys, err := keyring.Parse("1:73757065722d7365637265742d6d61737465722d6b6579")
	s.Require().NoError(err)
	s.keys = keys
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "artifacts")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) provision(name, domain, pubKeyHex string) string {
	version := s.keys.Active()
	lookupKey := version.LookupKey(name, domain)
	tag := version.IntegrityTag(name, domain, pubKeyHex)
	s.postgres.Exec(s.T(),
		`INSERT INTO artifacts (lookup_key, name, domain, pubkey, issued_at, integrity_tag)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		lookupKey, name, domain, pubKeyHex, time.Now().UTC(), tag)
	return lookupKey
}

func (s *PostgresStoreSuite) TestFetch() {
	ctx := context.Background()
	const pubKeyHex = "89ab1b7d0c243b4b54a816e6d66b1570d48b7dcd98c9bfc89b5a7868371e7b19"

	s.Run("returns a provisioned artifact", func() {
		lookupKey := s.provision("alice", "satnam.pub", pubKeyHex)

		artifact, err := s.store.Fetch(ctx, lookupKey)
		s.Require().NoError(err)
		s.Equal("alice", artifact.Name)
		s.Equal("satnam.pub", artifact.Domain)
		s.Equal(pubKeyHex, artifact.PubKey)
		s.NotEmpty(artifact.IntegrityTag)
	})

	s.Run("missing lookup key is not found", func() {
		_, err := s.store.Fetch(ctx, "0000000000000000000000000000000000000000000000000000000000000000")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("expired context surfaces as a context error", func() {
		lookupKey := s.provision("bob", "satnam.pub", pubKeyHex)

		expired, cancel := context.WithDeadline(ctx, time.Now().Add(-time.Second))
		defer cancel()

		_, err := s.store.Fetch(expired, lookupKey)
		s.Require().Error(err)
		s.True(errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled))
	})

	s.Run("fetched artifact passes tag verification", func() {
		lookupKey := s.provision("carol", "satnam.pub", pubKeyHex)

		artifact, err := s.store.Fetch(ctx, lookupKey)
		s.Require().NoError(err)
		s.True(s.keys.Active().VerifyTag(artifact.Name, artifact.Domain, artifact.PubKey, artifact.IntegrityTag))
	})
}
