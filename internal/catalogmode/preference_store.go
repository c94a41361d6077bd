package catalogmode

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	"github.com/angelmondragon/storefront-pricing/pkg/redis"
)

// PreferenceStore persists a shopper's toggle choice per store and session.
type PreferenceStore interface {
	Get(ctx context.Context, storeID, sessionID string) (*enums.PriceBasis, error)
	Set(ctx context.Context, storeID, sessionID string, basis enums.PriceBasis) error
	Clear(ctx context.Context, storeID, sessionID string) error
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CatalogPreferenceKey(storeID, sessionID string) string
}

type redisPreferenceStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewRedisPreferenceStore keeps preferences in Redis; ttl <= 0 keeps them indefinitely.
func NewRedisPreferenceStore(kv kvStore, ttl time.Duration) (PreferenceStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisPreferenceStore{kv: kv, ttl: ttl}, nil
}

func (s *redisPreferenceStore) Get(ctx context.Context, storeID, sessionID string) (*enums.PriceBasis, error) {
	raw, err := s.kv.Get(ctx, s.kv.CatalogPreferenceKey(storeID, sessionID))
	if err != nil {
		if redis.IsMiss(err) {
			return nil, nil
		}
		return nil, err
	}
	basis, err := enums.ParsePriceBasis(raw)
	if err != nil {
		// Unreadable values are treated as no preference.
		return nil, nil
	}
	return &basis, nil
}

func (s *redisPreferenceStore) Set(ctx context.Context, storeID, sessionID string, basis enums.PriceBasis) error {
	return s.kv.Set(ctx, s.kv.CatalogPreferenceKey(storeID, sessionID), basis.String(), s.ttl)
}

func (s *redisPreferenceStore) Clear(ctx context.Context, storeID, sessionID string) error {
	return s.kv.Del(ctx, s.kv.CatalogPreferenceKey(storeID, sessionID))
}
