package memory

import (
	"context"
	"slices"
	"time"

	"ordering/domain/order"
	"ordering/domain/shared"
)

type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	err := checkWrite(r.store.orders, order.EntityName, o.ID(), o.IsNew(), o.Version(),
		func(d order.ReconstructionDTO) int { return d.Version })
	if err != nil {
		return err
	}

	if !o.IsNew() {
		o.IncrementVersionForSave()
	}
	r.store.orders[o.ID()] = o.ToDTO()
	o.MarkPersisted()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.orders[id]
	if !ok {
		return nil, shared.NewNotFoundError(order.EntityName, id)
	}
	return order.RebuildFromDTO(dto), nil
}

// FindAll returns orders newest first
func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := rowsByCreation(r.store.orders, nil,
		func(d order.ReconstructionDTO) time.Time { return d.CreatedOn },
		func(d order.ReconstructionDTO) string { return d.ID })
	slices.Reverse(rows)

	orders := make([]*order.Order, len(rows))
	for i, dto := range rows {
		orders[i] = order.RebuildFromDTO(dto)
	}
	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)
