package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"satnam/internal/resolver/models"
	"satnam/pkg/sentinel"
)

const redisKeyPrefix = "artifact:"

// RedisStore reads JSON-serialized artifacts from Redis under
// "artifact:<lookupKey>". Deployments that replicate the artifact set into
// Redis get cheaper fetches; the serialization matches models.Artifact.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed artifact store.
func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Fetch returns the artifact stored under lookupKey.
func (s *RedisStore) Fetch(ctx context.Context, lookupKey string) (*models.Artifact, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+lookupKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fetch artifact: %v", sentinel.ErrUnavailable, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		// A corrupt record is indistinguishable from absence to callers.
		return nil, sentinel.ErrNotFound
	}
	return &artifact, nil
}
