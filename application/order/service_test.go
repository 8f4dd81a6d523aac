package order

import (
	"context"
	"errors"
	"testing"

	"ordering/domain/order"
	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/infrastructure/persistence/memory"
	"ordering/infrastructure/persistence/retry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *memory.Store
	products *memory.ProductRepository
	service  *ApplicationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	retryConfig := retry.DefaultConfig
	retryConfig.Enabled = false

	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	return &fixture{
		store:    store,
		products: products,
		service: NewApplicationService(
			memory.NewOrderRepository(store),
			products,
			memory.NewUnitOfWorkFactory(store, retryConfig),
		),
	}
}

func (f *fixture) product(t *testing.T, name, price string) string {
	t.Helper()
	p, err := product.NewProduct(product.Details{
		Name:  name,
		Price: shared.NewMoney(decimal.RequireFromString(price)),
	})
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), p))
	return p.ID()
}

func (f *fixture) retire(t *testing.T, id string) {
	t.Helper()
	ctx := context.Background()
	p, err := f.products.FindByID(ctx, id)
	require.NoError(t, err)
	require.NoError(t, p.Retire())
	require.NoError(t, f.products.Save(ctx, p))
}

func basket(items ...LineItemRequest) CreateOrderRequest {
	return CreateOrderRequest{LineItems: items}
}

func line(productID string, quantity int) LineItemRequest {
	return LineItemRequest{ProductID: productID, Quantity: quantity}
}

func TestAddOrder_PricesBasketFromLiveCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mug := f.product(t, "Mug", "2.50")
	pen := f.product(t, "Pen", "9.999")

	resp, err := f.service.AddOrder(ctx, basket(line(mug, 3), line(pen, 2)))
	require.NoError(t, err)

	assert.Equal(t, "CREATED", resp.Status)
	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, mug, resp.LineItems[0].Product.ID)
	assert.Equal(t, "7.50", resp.LineItems[0].SubTotal)
	assert.Equal(t, "9.99", resp.LineItems[1].Product.Price)
	assert.Equal(t, "19.99", resp.LineItems[1].SubTotal)
	// 7.50 + 19.998 truncated once
	assert.Equal(t, "27.49", resp.OrderTotal)

	events := f.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "order.created", events[0].EventType)
	assert.Equal(t, resp.ID, events[0].AggregateID)
}

func TestAddOrder_EmptyBasket(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.AddOrder(context.Background(), basket())
	require.NoError(t, err)
	assert.Empty(t, resp.LineItems)
	assert.Equal(t, "0.00", resp.OrderTotal)
}

func TestAddOrder_RejectsBadBaskets(t *testing.T) {
	f := newFixture(t)
	active := f.product(t, "Active", "1.00")
	retired := f.product(t, "Retired", "1.00")
	f.retire(t, retired)

	tests := []struct {
		name    string
		req     CreateOrderRequest
		wantErr error
		wantIDs []string
	}{
		{
			name:    "zero quantity",
			req:     basket(line(active, 0)),
			wantErr: shared.ErrInvalidInput,
		},
		{
			name:    "every missing product is reported",
			req:     basket(line("nope-1", 1), line(retired, 1), line("nope-2", 1)),
			wantErr: shared.ErrNotFound,
			wantIDs: []string{"nope-1", "nope-2"},
		},
		{
			name:    "retired product",
			req:     basket(line(active, 1), line(retired, 2)),
			wantErr: shared.ErrUnavailable,
			wantIDs: []string{retired},
		},
		{
			name:    "duplicate product ids",
			req:     basket(line(active, 1), line(active, 2)),
			wantErr: order.ErrDuplicateLineItem,
			wantIDs: []string{active},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.AddOrder(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantIDs != nil {
				assert.Equal(t, tt.wantIDs, shared.IDsOf(err))
			}
		})
	}

	orders, err := f.service.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.store.Events())
}

func TestUpdateOrder_ReplacesWholeBasket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Alpha", "1.00")
	b := f.product(t, "Beta", "2.00")

	created, err := f.service.AddOrder(ctx, basket(line(a, 1)))
	require.NoError(t, err)

	updated, err := f.service.UpdateOrder(ctx, created.ID, UpdateOrderRequest{
		LineItems: []LineItemRequest{line(b, 4)},
	})
	require.NoError(t, err)
	require.Len(t, updated.LineItems, 1)
	assert.Equal(t, b, updated.LineItems[0].Product.ID)
	assert.Equal(t, "8.00", updated.OrderTotal)

	// a rejected replacement leaves the basket untouched
	_, err = f.service.UpdateOrder(ctx, created.ID, UpdateOrderRequest{
		LineItems: []LineItemRequest{line(a, 1), line("missing", 1)},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	got, err := f.service.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, b, got.LineItems[0].Product.ID)
}

func TestLineItemOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Alpha", "1.25")
	b := f.product(t, "Beta", "3.00")

	created, err := f.service.AddOrder(ctx, basket(line(a, 2)))
	require.NoError(t, err)

	resp, err := f.service.AddLineItem(ctx, created.ID, b, 1)
	require.NoError(t, err)
	assert.Equal(t, "5.50", resp.OrderTotal)

	_, err = f.service.AddLineItem(ctx, created.ID, b, 1)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.ErrorIs(t, err, order.ErrDuplicateLineItem)

	resp, err = f.service.UpdateLineItem(ctx, created.ID, a, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.LineItems[0].Quantity)

	_, err = f.service.UpdateLineItem(ctx, created.ID, a, 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	resp, err = f.service.RemoveLineItem(ctx, created.ID, a)
	require.NoError(t, err)
	require.Len(t, resp.LineItems, 1)
	assert.Equal(t, "3.00", resp.OrderTotal)

	_, err = f.service.RemoveLineItem(ctx, created.ID, a)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLineItemOperations_RetiredProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kept := f.product(t, "Kept", "1.00")
	other := f.product(t, "Other", "1.00")

	created, err := f.service.AddOrder(ctx, basket(line(kept, 1)))
	require.NoError(t, err)

	f.retire(t, kept)
	f.retire(t, other)

	_, err = f.service.AddLineItem(ctx, created.ID, other, 1)
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	// an existing line of a retired product can still change quantity
	resp, err := f.service.UpdateLineItem(ctx, created.ID, kept, 5)
	require.NoError(t, err)
	assert.Equal(t, "5.00", resp.OrderTotal)

	_, err = f.service.AddLineItem(ctx, created.ID, "missing", 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Thing", "1.00")

	cancelled, err := f.service.AddOrder(ctx, basket(line(p, 1)))
	require.NoError(t, err)
	require.NoError(t, f.service.CancelOrder(ctx, cancelled.ID))

	err = f.service.CancelOrder(ctx, cancelled.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.ErrorIs(t, err, order.ErrOrderCancelled)

	// terminal state wins over the missing product
	_, err = f.service.AddLineItem(ctx, cancelled.ID, "missing", 1)
	assert.ErrorIs(t, err, order.ErrOrderCancelled)

	completed, err := f.service.AddOrder(ctx, basket(line(p, 1)))
	require.NoError(t, err)
	require.NoError(t, f.service.CompleteOrder(ctx, completed.ID))

	err = f.service.CancelOrder(ctx, completed.ID)
	assert.ErrorIs(t, err, order.ErrOrderCompleted)

	_, err = f.service.UpdateOrder(ctx, completed.ID, UpdateOrderRequest{})
	assert.ErrorIs(t, err, order.ErrOrderCompleted)

	got, err := f.service.GetOrder(ctx, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETE", got.Status)
	assert.Len(t, got.LineItems, 1)

	err = f.service.CompleteOrder(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListOrders_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Thing", "1.00")

	first, err := f.service.AddOrder(ctx, basket(line(p, 1)))
	require.NoError(t, err)
	second, err := f.service.AddOrder(ctx, basket())
	require.NoError(t, err)

	orders, err := f.service.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Equal(t, "1.00", orders[1].OrderTotal)
}

func TestPricesFollowCatalogChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.product(t, "Lamp", "10.00")

	created, err := f.service.AddOrder(ctx, basket(line(id, 2)))
	require.NoError(t, err)
	assert.Equal(t, "20.00", created.OrderTotal)

	p, err := f.products.FindByID(ctx, id)
	require.NoError(t, err)
	require.NoError(t, p.Update(product.Details{
		Name:  "Lamp",
		Price: shared.NewMoney(decimal.RequireFromString("12.50")),
	}))
	require.NoError(t, f.products.Save(ctx, p))

	got, err := f.service.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "25.00", got.OrderTotal)
	assert.Equal(t, "12.50", got.LineItems[0].Product.Price)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetOrder(context.Background(), "missing")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
