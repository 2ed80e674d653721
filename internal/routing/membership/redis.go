package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"satnam/pkg/sentinel"
)

const groupKeyPrefix = "group:"

// RedisVerifier answers membership from Redis sets maintained by the account
// platform ("group:<owner>" holding member IDs). Every call hits Redis so a
// revocation takes effect on the next request.
type RedisVerifier struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed verifier.
func NewRedis(client redis.Cmdable) *RedisVerifier {
	return &RedisVerifier{client: client}
}

// IsMember reports current membership.
func (v *RedisVerifier) IsMember(ctx context.Context, groupOwner, candidateID string) (bool, error) {
	ok, err := v.client.SIsMember(ctx, groupKeyPrefix+groupOwner, candidateID).Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return false, err
		}
		return false, fmt.Errorf("%w: membership check: %v", sentinel.ErrUnavailable, err)
	}
	return ok, nil
}
