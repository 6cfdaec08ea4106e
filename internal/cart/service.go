package cart

import (
	"context"
	"fmt"
)

// Service validates and persists cart snapshots.
type Service interface {
	Put(ctx context.Context, cart Cart) error
	Get(ctx context.Context, renterID string) (*Cart, error)
}

type service struct {
	store Store
}

// NewService builds the cart service.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store}, nil
}

func (s *service) Put(ctx context.Context, cart Cart) error {
	if err := cart.Validate(); err != nil {
		return err
	}
	return s.store.Save(ctx, cart)
}

func (s *service) Get(ctx context.Context, renterID string) (*Cart, error) {
	return s.store.Get(ctx, renterID)
}
