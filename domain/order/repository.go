package order

import "context"

// Repository Order repository interface
type Repository interface {
	// Save inserts a new order or updates an existing one.
	// Updates are guarded by version; a stale version yields shared.ErrConcurrentModification.
	// Events are collected by the UoW and written to the outbox, not here.
	Save(ctx context.Context, order *Order) error

	// FindByID returns shared.ErrNotFound when missing
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindAll lists orders, newest first
	FindAll(ctx context.Context) ([]*Order, error)
}
