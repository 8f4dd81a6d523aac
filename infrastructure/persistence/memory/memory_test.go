package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordering/domain/order"
	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/infrastructure/persistence/retry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, name string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(product.Details{
		Name:  name,
		Price: shared.NewMoney(decimal.RequireFromString("9.99")),
	})
	require.NoError(t, err)
	return p
}

func noRetry() retry.Config {
	cfg := retry.DefaultConfig
	cfg.Enabled = false
	return cfg
}

func TestProductRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())

	p := newProduct(t, "Lamp")
	require.NoError(t, repo.Save(ctx, p))
	assert.False(t, p.IsNew())
	assert.Equal(t, 0, p.Version())

	found, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "Lamp", found.Name())
	assert.Equal(t, "9.99", found.Price().String())

	byName, err := repo.FindByName(ctx, "Lamp")
	require.NoError(t, err)
	assert.Equal(t, p.ID(), byName.ID())

	_, err = repo.FindByName(ctx, "lamp")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductRepository_LoadedAggregateIsDetached(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())
	p := newProduct(t, "Lamp")
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Retire())

	stored, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.False(t, stored.IsRetired())
}

func TestProductRepository_OptimisticLock(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())
	p := newProduct(t, "Lamp")
	require.NoError(t, repo.Save(ctx, p))

	first, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)

	require.NoError(t, first.Retire())
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, 1, first.Version())

	require.NoError(t, second.Retire())
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrentModification)
}

func TestProductRepository_UniqueName(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())
	require.NoError(t, repo.Save(ctx, newProduct(t, "Lamp")))

	err := repo.Save(ctx, newProduct(t, "Lamp"))
	assert.ErrorIs(t, err, shared.ErrConflict)

	assert.NoError(t, repo.Save(ctx, newProduct(t, "LAMP")))
}

func TestProductRepository_FindByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())
	a, b := newProduct(t, "A"), newProduct(t, "B")
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	found, err := repo.FindByIDs(ctx, []string{b.ID(), "missing", a.ID(), b.ID()})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, b.ID(), found[0].ID())
	assert.Equal(t, a.ID(), found[1].ID())
}

func TestOrderRepository_FindAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(NewStore())

	var ids []string
	for i := 0; i < 3; i++ {
		o, err := order.NewOrder(nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, o))
		ids = append(ids, o.ID())
		time.Sleep(time.Millisecond)
	}

	orders, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID())
	assert.Equal(t, ids[0], orders[2].ID())
}

func TestUnitOfWork_CommitsEventsToOutbox(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewOrderRepository(store)
	uow := NewUnitOfWorkFactory(store, noRetry()).New()

	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := order.NewOrder([]order.LineRequest{{ProductID: "p-1", Quantity: 2}})
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	require.NoError(t, err)

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "order.created", events[0].EventType)
	assert.Equal(t, order.EntityName, events[0].AggregateType)
	assert.NotEmpty(t, events[0].Payload["line_items"])
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewProductRepository(store)
	uow := NewUnitOfWork(store, noRetry())
	boom := errors.New("boom")

	p := newProduct(t, "Lamp")
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterNew(p)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.FindByID(ctx, p.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, store.Events())
}

func TestUnitOfWork_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewProductRepository(store)
	uow := NewUnitOfWork(store, noRetry())

	p := newProduct(t, "Lamp")
	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.Execute(ctx, func(ctx context.Context) error {
			if err := repo.Save(ctx, p); err != nil {
				return err
			}
			panic("boom")
		})
	})

	_, err := repo.FindByID(ctx, p.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// the write lock was released
	other := newProduct(t, "Bulb")
	require.NoError(t, uow.Execute(ctx, func(ctx context.Context) error {
		return repo.Save(ctx, other)
	}))
}

func TestUnitOfWork_RetriesConcurrentModification(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	cfg := retry.DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.JitterEnabled = false
	uow := NewUnitOfWork(store, cfg)

	attempts := 0
	err := uow.Execute(ctx, func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return shared.NewConcurrentModificationError(order.EntityName, "o-1")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
