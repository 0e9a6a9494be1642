package repository

import (
	"context"

	"tableside/internal/domain"
)

// Orders is the order store. Both writes map to single atomic store
// operations: Insert is one transaction, UpdateStatus is one UPDATE matched
// by id. Neither is ever composed from a read followed by a save.
type Orders interface {
	Insert(ctx context.Context, o domain.Order) error
	// UpdateStatus atomically sets the status of exactly one order and
	// returns the owning restaurant id, so the caller can re-read and
	// publish. Last write wins under concurrent transitions.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (restaurantID string, err error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error)
}
