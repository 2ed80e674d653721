// Package membership provides the trust-group verification capability the
// route selector depends on. Checks run fresh per request: group membership
// can change and must never be assumed stable, so no implementation caches.
package membership

import "context"

// Verifier reports whether candidateID belongs to groupOwner's trust group.
type Verifier interface {
	IsMember(ctx context.Context, groupOwner, candidateID string) (bool, error)
}
