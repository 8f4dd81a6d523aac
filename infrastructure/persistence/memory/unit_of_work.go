package memory

import (
	"context"
	"fmt"

	"ordering/domain/shared"
	"ordering/infrastructure/persistence/retry"
)

// UnitOfWork serializes writers on the store and rolls back to a snapshot on error
type UnitOfWork struct {
	store       *Store
	outbox      *OutboxRepository
	aggregates  []shared.AggregateRoot
	retryConfig retry.Config
}

func NewUnitOfWork(store *Store, retryConfig retry.Config) *UnitOfWork {
	return &UnitOfWork{
		store:       store,
		outbox:      NewOutboxRepository(store),
		retryConfig: retryConfig,
	}
}

// Execute runs fn as one atomic unit. Events of registered aggregates go to
// the outbox before the unit is considered committed.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		u.aggregates = nil

		u.store.txMu.Lock()
		defer u.store.txMu.Unlock()

		snap := u.store.snapshot()
		defer func() {
			if r := recover(); r != nil {
				u.store.restore(snap)
				panic(r)
			}
		}()

		if err := fn(ctx); err != nil {
			u.store.restore(snap)
			return err
		}

		for _, agg := range u.aggregates {
			for _, event := range agg.PullEvents() {
				if err := u.outbox.SaveEvent(ctx, event); err != nil {
					u.store.restore(snap)
					return fmt.Errorf("failed to save event to outbox: %w", err)
				}
			}
		}
		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

type UnitOfWorkFactory struct {
	store       *Store
	retryConfig retry.Config
}

func NewUnitOfWorkFactory(store *Store, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, retryConfig: retryConfig}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return NewUnitOfWork(f.store, f.retryConfig)
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
