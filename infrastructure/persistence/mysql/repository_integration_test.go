package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordering/domain/category"
	"ordering/domain/order"
	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/domain/tag"
	"ordering/infrastructure/persistence/mysql/po"
	"ordering/infrastructure/persistence/retry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MySQL integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcmysql.Run(ctx,
		"mysql:8.0.36",
		tcmysql.WithDatabase("ordering"),
		tcmysql.WithUsername("ordering"),
		tcmysql.WithPassword("ordering"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("port: 3306  MySQL Community Server").
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "loc=UTC", "charset=utf8mb4")
	require.NoError(t, err)

	db, err := Open(dsn, "silent")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func price(t *testing.T, value string) shared.Money {
	t.Helper()
	m, err := shared.ParseMoney(value)
	require.NoError(t, err)
	return m
}

func TestMySQLRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	products := NewProductRepository(db)
	categories := NewCategoryRepository(db)
	tags := NewTagRepository(db)
	orders := NewOrderRepository(db)

	lamp, err := product.NewProduct(product.Details{Name: "Lamp", Description: "Desk lamp", Price: price(t, "14.289")})
	require.NoError(t, err)
	require.NoError(t, products.Save(ctx, lamp))

	t.Run("product price keeps four decimals", func(t *testing.T) {
		found, err := products.FindByID(ctx, lamp.ID())
		require.NoError(t, err)
		assert.True(t, found.Price().Amount().Equal(decimal.RequireFromString("14.289")))
		assert.Equal(t, "14.28", found.Price().String())
	})

	t.Run("name lookup is exact and case sensitive", func(t *testing.T) {
		found, err := products.FindByName(ctx, "Lamp")
		require.NoError(t, err)
		assert.Equal(t, lamp.ID(), found.ID())

		_, err = products.FindByName(ctx, "lamp")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unique index rejects a duplicate name", func(t *testing.T) {
		dup, err := product.NewProduct(product.Details{Name: "Lamp", Price: price(t, "1.00")})
		require.NoError(t, err)
		assert.ErrorIs(t, products.Save(ctx, dup), shared.ErrConflict)
	})

	t.Run("stale version is a concurrent modification", func(t *testing.T) {
		first, err := products.FindByID(ctx, lamp.ID())
		require.NoError(t, err)
		second, err := products.FindByID(ctx, lamp.ID())
		require.NoError(t, err)

		require.NoError(t, first.Update(product.Details{Name: "Lamp", Description: "Floor lamp", Price: price(t, "20")}))
		require.NoError(t, products.Save(ctx, first))
		assert.Equal(t, 1, first.Version())

		require.NoError(t, second.Update(product.Details{Name: "Lamp", Description: "Wall lamp", Price: price(t, "21")}))
		assert.ErrorIs(t, products.Save(ctx, second), shared.ErrConcurrentModification)
	})

	t.Run("category membership is stored on the product", func(t *testing.T) {
		kitchen, err := category.NewCategory("Kitchen", "")
		require.NoError(t, err)
		require.NoError(t, categories.Save(ctx, kitchen))

		p, err := products.FindByID(ctx, lamp.ID())
		require.NoError(t, err)
		require.NoError(t, p.AssignCategory(kitchen.ID()))
		require.NoError(t, products.Save(ctx, p))

		members, err := products.FindByCategoryID(ctx, kitchen.ID())
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, lamp.ID(), members[0].ID())
	})

	t.Run("tag saves its product set", func(t *testing.T) {
		sale, err := tag.NewTag("Sale", "")
		require.NoError(t, err)
		require.NoError(t, sale.AddProduct(lamp.ID()))
		require.NoError(t, tags.Save(ctx, sale))

		found, err := tags.FindByID(ctx, sale.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{lamp.ID()}, found.ProductIDs())

		require.NoError(t, found.RemoveProduct(lamp.ID()))
		require.NoError(t, tags.Save(ctx, found))

		all, err := tags.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Empty(t, all[0].ProductIDs())
	})

	t.Run("order line items keep insertion order", func(t *testing.T) {
		o, err := order.NewOrder([]order.LineRequest{
			{ProductID: "p-b", Quantity: 2},
			{ProductID: "p-a", Quantity: 1},
		})
		require.NoError(t, err)
		require.NoError(t, orders.Save(ctx, o))

		loaded, err := orders.FindByID(ctx, o.ID())
		require.NoError(t, err)
		require.NoError(t, loaded.AddLineItem("p-c", 3))
		require.NoError(t, orders.Save(ctx, loaded))

		again, err := orders.FindByID(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"p-b", "p-a", "p-c"}, again.ProductIDs())
		assert.Equal(t, 1, again.Version())
	})

	t.Run("unit of work writes events and rolls back on error", func(t *testing.T) {
		factory := NewUnitOfWorkFactory(db, retry.DefaultConfig)

		uow := factory.New()
		var created *order.Order
		err := uow.Execute(ctx, func(ctx context.Context) error {
			o, err := order.NewOrder(nil)
			if err != nil {
				return err
			}
			if err := orders.Save(ctx, o); err != nil {
				return err
			}
			uow.RegisterNew(o)
			created = o
			return nil
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&po.OutboxEventPO{}).Where("aggregate_id = ?", created.ID()).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		boom := errors.New("boom")
		uow = factory.New()
		var rolledBack *order.Order
		err = uow.Execute(ctx, func(ctx context.Context) error {
			o, err := order.NewOrder(nil)
			if err != nil {
				return err
			}
			if err := orders.Save(ctx, o); err != nil {
				return err
			}
			rolledBack = o
			return boom
		})
		assert.ErrorIs(t, err, boom)
		_, err = orders.FindByID(ctx, rolledBack.ID())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("outbox worker publishes pending events", func(t *testing.T) {
		outbox := NewOutboxRepository(db)
		pending, err := outbox.GetPendingEvents(ctx, 100)
		require.NoError(t, err)
		require.NotEmpty(t, pending)

		w := &OutboxWorker{store: outbox, publisher: &LoggingOutboxPublisher{}, batchSize: 100, maxRetries: 3}
		published, err := w.processBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(pending), published)

		pending, err = outbox.GetPendingEvents(ctx, 100)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}
