package membership

import (
	"context"
	"sync"
)

// MemoryVerifier is an in-memory group directory for development and tests.
type MemoryVerifier struct {
	mu     sync.RWMutex
	groups map[string]map[string]bool
}

// NewMemory creates an empty in-memory verifier.
func NewMemory() *MemoryVerifier {
	return &MemoryVerifier{groups: make(map[string]map[string]bool)}
}

// Add registers candidateID as a member of groupOwner's group.
func (v *MemoryVerifier) Add(groupOwner, candidateID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.groups[groupOwner] == nil {
		v.groups[groupOwner] = make(map[string]bool)
	}
	v.groups[groupOwner][candidateID] = true
}

// Remove drops candidateID from groupOwner's group.
func (v *MemoryVerifier) Remove(groupOwner, candidateID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.groups[groupOwner], candidateID)
}

// IsMember reports current membership.
func (v *MemoryVerifier) IsMember(ctx context.Context, groupOwner, candidateID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.groups[groupOwner][candidateID], nil
}
