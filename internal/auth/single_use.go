package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SingleUse tracks consumed one-shot token ids so a password-reset token
// cannot be replayed. Consume returns false when the id was already spent.
type SingleUse interface {
	Consume(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

// RedisSingleUse marks consumed token ids in Redis. Entries expire alongside
// the token itself, so the set stays bounded without cleanup jobs.
type RedisSingleUse struct {
	client *redis.Client
}

// NewRedisSingleUse constructs a Redis-backed SingleUse store.
func NewRedisSingleUse(client *redis.Client) *RedisSingleUse {
	return &RedisSingleUse{client: client}
}

// Consume atomically claims the token id. The first caller wins.
func (s *RedisSingleUse) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, "auth:consumed:"+id, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("auth: consume token id: %w", err)
	}
	return ok, nil
}

var _ SingleUse = (*RedisSingleUse)(nil)
