package challenge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openlance/vouch/core"
	"github.com/openlance/vouch/internal/wallet"
	"github.com/openlance/vouch/ports"
)

// RedisStore is a Redis implementation of the ChallengeStore interface.
// Challenges expire server-side through the key TTL, so a crashed instance
// never leaves stale entries behind.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed challenge store with the given
// maximum challenge age. A non-positive ttl falls back to DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		prefix: "vouch:challenge:",
		ttl:    ttl,
	}
}

type redisChallenge struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Issue generates a new challenge and stores it under the address key with
// the store TTL, replacing any prior entry.
func (s *RedisStore) Issue(ctx context.Context, address string) (*core.Challenge, error) {
	address = wallet.NormalizeAddress(address)

	ch, err := newChallenge(address)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(redisChallenge{Text: ch.Text, CreatedAt: ch.CreatedAt})
	if err != nil {
		return nil, fmt.Errorf("marshaling challenge: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+address, payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("storing challenge: %w", err)
	}

	return ch, nil
}

// Peek returns the live challenge for the address, or core.ErrNoChallenge
// once the key has expired.
func (s *RedisStore) Peek(ctx context.Context, address string) (*core.Challenge, error) {
	address = wallet.NormalizeAddress(address)

	raw, err := s.client.Get(ctx, s.prefix+address).Result()
	if err == redis.Nil {
		return nil, core.ErrNoChallenge
	}
	if err != nil {
		return nil, fmt.Errorf("reading challenge: %w", err)
	}

	var rc redisChallenge
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return nil, fmt.Errorf("unmarshaling challenge: %w", err)
	}

	return &core.Challenge{
		Address:   address,
		Text:      rc.Text,
		CreatedAt: rc.CreatedAt,
	}, nil
}

// Take returns and deletes the challenge key atomically (GETDEL), so only
// one of several concurrent callers across instances gets it.
func (s *RedisStore) Take(ctx context.Context, address string) (*core.Challenge, error) {
	address = wallet.NormalizeAddress(address)

	raw, err := s.client.GetDel(ctx, s.prefix+address).Result()
	if err == redis.Nil {
		return nil, core.ErrNoChallenge
	}
	if err != nil {
		return nil, fmt.Errorf("taking challenge: %w", err)
	}

	var rc redisChallenge
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return nil, fmt.Errorf("unmarshaling challenge: %w", err)
	}

	return &core.Challenge{
		Address:   address,
		Text:      rc.Text,
		CreatedAt: rc.CreatedAt,
	}, nil
}

// Consume deletes the challenge key. Idempotent.
func (s *RedisStore) Consume(ctx context.Context, address string) error {
	address = wallet.NormalizeAddress(address)

	if err := s.client.Del(ctx, s.prefix+address).Err(); err != nil {
		return fmt.Errorf("deleting challenge: %w", err)
	}
	return nil
}

var _ ports.ChallengeStore = (*RedisStore)(nil)
