package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-pricing/pkg/redis"
	"github.com/google/uuid"
)

// SnapshotStore persists the unpriced cart of a store session.
type SnapshotStore interface {
	Load(ctx context.Context, storeID uuid.UUID, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, storeID uuid.UUID, sessionID string) error
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(storeID, sessionID string) string
}

type redisSnapshotStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewRedisSnapshotStore keeps cart snapshots in Redis. Every save refreshes the ttl.
func NewRedisSnapshotStore(kv kvStore, ttl time.Duration) (SnapshotStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisSnapshotStore{kv: kv, ttl: ttl}, nil
}

// Load returns the stored cart, or an empty one when the session has none.
func (s *redisSnapshotStore) Load(ctx context.Context, storeID uuid.UUID, sessionID string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(storeID.String(), sessionID))
	if err != nil {
		if redis.IsMiss(err) {
			return New(storeID, sessionID), nil
		}
		return nil, err
	}

	var stored Cart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	// The key decides ownership, not the payload.
	stored.StoreID = storeID
	stored.SessionID = sessionID
	if stored.Lines == nil {
		stored.Lines = []Line{}
	}
	return &stored, nil
}

func (s *redisSnapshotStore) Save(ctx context.Context, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	return s.kv.Set(ctx, s.kv.CartKey(cart.StoreID.String(), cart.SessionID), string(payload), s.ttl)
}

func (s *redisSnapshotStore) Delete(ctx context.Context, storeID uuid.UUID, sessionID string) error {
	return s.kv.Del(ctx, s.kv.CartKey(storeID.String(), sessionID))
}
