package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/redis"
)

// Store persists cart snapshots keyed by renter.
type Store interface {
	Save(ctx context.Context, cart Cart) error
	Get(ctx context.Context, renterID string) (*Cart, error)
	Clear(ctx context.Context, renterID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a TTL'd redis-backed cart store.
func NewRedisStore(client *redis.Client, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Save(ctx context.Context, cart Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart snapshot")
	}
	if err := s.client.Set(ctx, s.client.CartKey(cart.RenterID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing cart snapshot")
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, renterID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(renterID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no cart for renter")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart snapshot")
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart snapshot")
	}
	return &cart, nil
}

func (s *redisStore) Clear(ctx context.Context, renterID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(renterID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart snapshot")
	}
	return nil
}
