package store

import (
	"context"
	"sync"

	"satnam/internal/resolver/models"
	"satnam/pkg/sentinel"
)

// MemoryStore is an in-memory artifact store for development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]models.Artifact
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{artifacts: make(map[string]models.Artifact)}
}

// Put stores an artifact under a lookup key. This is the out-of-band
// provisioning path; the resolver itself never writes.
func (s *MemoryStore) Put(lookupKey string, artifact models.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[lookupKey] = artifact
}

// Delete removes an artifact. Provisioning/test helper, as with Put.
func (s *MemoryStore) Delete(lookupKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.artifacts, lookupKey)
}

// Fetch returns the artifact stored under lookupKey.
func (s *MemoryStore) Fetch(ctx context.Context, lookupKey string) (*models.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.artifacts[lookupKey]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := artifact
	return &copied, nil
}
