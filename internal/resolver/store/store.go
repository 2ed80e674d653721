// Package store provides artifact storage backends keyed by opaque lookup
// digests. The core only reads: artifacts are provisioned out-of-band by the
// account platform. No backend exposes a listing operation.
package store

import (
	"context"

	"satnam/internal/resolver/models"
)

// ArtifactStore is the capability interface over keyed get-by-digest.
// Implementations return sentinel.ErrNotFound when no artifact exists under
// the key and sentinel.ErrUnavailable (wrapped) when the backend is
// unreachable.
type ArtifactStore interface {
	Fetch(ctx context.Context, lookupKey string) (*models.Artifact, error)
}
