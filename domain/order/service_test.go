package order

import (
	"context"
	"testing"

	"ordering/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products map[string]CatalogProduct
	calls    int
}

func (c *stubCatalog) LookupProducts(_ context.Context, ids []string) (map[string]CatalogProduct, error) {
	c.calls++
	found := make(map[string]CatalogProduct)
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func money(t *testing.T, s string) shared.Money {
	t.Helper()
	m, err := shared.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func newStubCatalog(t *testing.T) *stubCatalog {
	return &stubCatalog{products: map[string]CatalogProduct{
		"burger": {ID: "burger", Name: "Burger", Price: money(t, "12.99")},
		"fries":  {ID: "fries", Name: "Fries", Price: money(t, "2.50")},
		"old":    {ID: "old", Name: "Old", Price: money(t, "1.00"), Retired: true},
		"older":  {ID: "older", Name: "Older", Price: money(t, "1.00"), Retired: true},
	}}
}

func TestCheckBasket_ResolvesInOneBatch(t *testing.T) {
	catalog := newStubCatalog(t)
	svc := NewDomainService(catalog)

	err := svc.CheckBasket(context.Background(), []LineRequest{{"burger", 1}, {"fries", 2}})

	require.NoError(t, err)
	assert.Equal(t, 1, catalog.calls)
}

func TestCheckBasket_ListsEveryMissingProduct(t *testing.T) {
	svc := NewDomainService(newStubCatalog(t))

	err := svc.CheckBasket(context.Background(), []LineRequest{{"burger", 1}, {"ghost", 1}, {"old", 1}, {"phantom", 1}})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, []string{"ghost", "phantom"}, shared.IDsOf(err))
}

func TestCheckBasket_ListsEveryRetiredProduct(t *testing.T) {
	svc := NewDomainService(newStubCatalog(t))

	err := svc.CheckBasket(context.Background(), []LineRequest{{"old", 1}, {"burger", 1}, {"older", 1}})

	assert.ErrorIs(t, err, shared.ErrUnavailable)
	assert.Equal(t, []string{"old", "older"}, shared.IDsOf(err))
}

func TestCheckBasket_DuplicatesCheckedAfterCatalog(t *testing.T) {
	svc := NewDomainService(newStubCatalog(t))

	err := svc.CheckBasket(context.Background(), []LineRequest{{"burger", 1}, {"burger", 2}})
	assert.ErrorIs(t, err, ErrDuplicateLineItem)

	err = svc.CheckBasket(context.Background(), []LineRequest{{"ghost", 1}, {"ghost", 2}})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCheckBasket_EmptyNeedsNoLookup(t *testing.T) {
	catalog := newStubCatalog(t)

	require.NoError(t, NewDomainService(catalog).CheckBasket(context.Background(), nil))
	assert.Zero(t, catalog.calls)
}

func TestCheckAddableAndExists(t *testing.T) {
	svc := NewDomainService(newStubCatalog(t))
	ctx := context.Background()

	assert.NoError(t, svc.CheckAddable(ctx, "burger"))
	assert.ErrorIs(t, svc.CheckAddable(ctx, "old"), shared.ErrUnavailable)
	assert.ErrorIs(t, svc.CheckAddable(ctx, "ghost"), shared.ErrNotFound)

	assert.NoError(t, svc.CheckExists(ctx, "old"))
	assert.ErrorIs(t, svc.CheckExists(ctx, "ghost"), shared.ErrNotFound)
}

func TestValue_PricesSeveralOrdersWithOneLookup(t *testing.T) {
	catalog := newStubCatalog(t)
	svc := NewDomainService(catalog)
	a := newTestOrder(t, LineRequest{"burger", 1}, LineRequest{"fries", 2})
	b := newTestOrder(t, LineRequest{"burger", 10})
	empty := newTestOrder(t)

	valuations, err := svc.Value(context.Background(), a, b, empty)

	require.NoError(t, err)
	assert.Equal(t, 1, catalog.calls)
	require.Len(t, valuations, 3)
	assert.Equal(t, "17.99", valuations[0].Total.String())
	assert.Equal(t, "129.90", valuations[1].Total.String())
	assert.Equal(t, "0.00", valuations[2].Total.String())
}
