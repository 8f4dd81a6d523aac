package product

import "context"

// Repository Product repository interface
type Repository interface {
	// Save inserts new products and updates existing ones under an optimistic lock
	Save(ctx context.Context, product *Product) error

	// FindByID returns shared.ErrNotFound when missing
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs resolves a batch of ids in one round trip. Missing ids are omitted.
	FindByIDs(ctx context.Context, ids []string) ([]*Product, error)

	// FindByName matches the exact name
	FindByName(ctx context.Context, name string) (*Product, error)

	FindAll(ctx context.Context) ([]*Product, error)

	FindByCategoryID(ctx context.Context, categoryID string) ([]*Product, error)
}
