package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/essenza-labs/storefront/internal/cart/domain"
)

// Store keeps one JSON document per session under cart:<session>. SET
// replaces the whole snapshot in a single command, so readers never observe
// a partially written line collection.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *Store) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(sessionID), payload, s.ttl).Err()
}

func (s *Store) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	payload, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, err
	}
	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, key(sessionID)).Err()
}
