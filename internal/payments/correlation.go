package payments

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/redis"
)

// CurrentOrder is the durable correlation handle bridging dispatch and
// return. The return navigation arrives on a fresh request with no
// in-memory state; this record is the only way to recover the amount and
// cart context. It is written once per checkout attempt and read once per
// return; a second checkout by the same renter overwrites it.
type CurrentOrder struct {
	OrderID       string    `json:"order_id"`
	CartID        string    `json:"cart_id"`
	RenterID      string    `json:"renter_id"`
	BookingID     string    `json:"booking_id,omitempty"`
	TotalAmount   string    `json:"total_amount"`
	AdvanceAmount string    `json:"advance_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// CorrelationStore persists the current-order handle and the single-flight
// checkout lock.
type CorrelationStore interface {
	SaveCurrentOrder(ctx context.Context, handle CurrentOrder) error
	CurrentOrder(ctx context.Context, renterID string) (*CurrentOrder, error)
	ClearCurrentOrder(ctx context.Context, renterID string) error
	AcquireLock(ctx context.Context, cartID string) (bool, error)
	ReleaseLock(ctx context.Context, cartID string) error
}

type redisCorrelationStore struct {
	client    *redis.Client
	handleTTL time.Duration
	lockTTL   time.Duration
}

// NewRedisCorrelationStore builds the redis-backed correlation store. The
// lock TTL bounds how long an abandoned dispatch can block a cart.
func NewRedisCorrelationStore(client *redis.Client, handleTTL, lockTTL time.Duration) (CorrelationStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &redisCorrelationStore{client: client, handleTTL: handleTTL, lockTTL: lockTTL}, nil
}

func (s *redisCorrelationStore) SaveCurrentOrder(ctx context.Context, handle CurrentOrder) error {
	payload, err := json.Marshal(handle)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding current-order handle")
	}
	if err := s.client.Set(ctx, s.client.CurrentOrderKey(handle.RenterID), string(payload), s.handleTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing current-order handle")
	}
	return nil
}

func (s *redisCorrelationStore) CurrentOrder(ctx context.Context, renterID string) (*CurrentOrder, error) {
	raw, err := s.client.Get(ctx, s.client.CurrentOrderKey(renterID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no current order for renter")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading current-order handle")
	}
	var handle CurrentOrder
	if err := json.Unmarshal([]byte(raw), &handle); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding current-order handle")
	}
	return &handle, nil
}

func (s *redisCorrelationStore) ClearCurrentOrder(ctx context.Context, renterID string) error {
	if err := s.client.Del(ctx, s.client.CurrentOrderKey(renterID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing current-order handle")
	}
	return nil
}

func (s *redisCorrelationStore) AcquireLock(ctx context.Context, cartID string) (bool, error) {
	return s.client.SetNX(ctx, s.client.CheckoutLockKey(cartID), "1", s.lockTTL)
}

func (s *redisCorrelationStore) ReleaseLock(ctx context.Context, cartID string) error {
	return s.client.Del(ctx, s.client.CheckoutLockKey(cartID))
}
