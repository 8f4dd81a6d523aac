package catalog

import (
	"context"
	"testing"

	"ordering/domain/shared"
	"ordering/infrastructure/persistence/memory"
	"ordering/infrastructure/persistence/retry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	store      *memory.Store
	products   *ProductService
	categories *CategoryService
	tags       *TagService
}

func newServices(t *testing.T) *services {
	t.Helper()
	retryConfig := retry.DefaultConfig
	retryConfig.Enabled = false

	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	categoryRepo := memory.NewCategoryRepository(store)
	tagRepo := memory.NewTagRepository(store)
	uowFactory := memory.NewUnitOfWorkFactory(store, retryConfig)

	return &services{
		store:      store,
		products:   NewProductService(productRepo, categoryRepo, uowFactory),
		categories: NewCategoryService(categoryRepo, productRepo, uowFactory),
		tags:       NewTagService(tagRepo, productRepo, uowFactory),
	}
}

func productRequest(name, price string) ProductRequest {
	return ProductRequest{Name: name, Price: decimal.RequireFromString(price)}
}

func TestProductService_AddAndGet(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.products.AddProduct(ctx, ProductRequest{
		Name:        "  Desk Lamp ",
		Description: "Warm light",
		Price:       decimal.RequireFromString("19.999"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", created.Name)
	assert.Equal(t, "19.99", created.Price)
	assert.False(t, created.Retired)

	got, err := s.products.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = s.products.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Validation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ProductRequest
	}{
		{"blank name", productRequest("   ", "1.00")},
		{"invalid characters", productRequest("Lamp<script>", "1.00")},
		{"zero price", productRequest("Lamp", "0")},
		{"negative price", productRequest("Lamp", "-1.00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.products.AddProduct(ctx, tt.req)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}

	products, err := s.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_UniqueName(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	lamp, err := s.products.AddProduct(ctx, productRequest("Lamp", "1.00"))
	require.NoError(t, err)

	_, err = s.products.AddProduct(ctx, productRequest("Lamp", "2.00"))
	assert.ErrorIs(t, err, shared.ErrConflict)

	// names compare exactly
	_, err = s.products.AddProduct(ctx, productRequest("lamp", "2.00"))
	require.NoError(t, err)

	chair, err := s.products.AddProduct(ctx, productRequest("Chair", "5.00"))
	require.NoError(t, err)

	_, err = s.products.UpdateProduct(ctx, chair.ID, productRequest("Lamp", "5.00"))
	assert.ErrorIs(t, err, shared.ErrConflict)

	// keeping its own name is fine
	updated, err := s.products.UpdateProduct(ctx, lamp.ID, productRequest("Lamp", "3.50"))
	require.NoError(t, err)
	assert.Equal(t, "3.50", updated.Price)
}

func TestProductService_Retire(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	p, err := s.products.AddProduct(ctx, productRequest("Lamp", "1.00"))
	require.NoError(t, err)

	retired, err := s.products.RetireProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, retired.Retired)

	_, err = s.products.RetireProduct(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrAlreadyRetired)

	_, err = s.products.UpdateProduct(ctx, p.ID, productRequest("Lamp", "2.00"))
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	// retired products stay listed
	products, err := s.products.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Retired)

	var types []string
	for _, e := range s.store.Events() {
		types = append(types, e.EventType)
	}
	assert.Contains(t, types, "product.retired")
}

func TestProductService_AddIntoCategory(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	c, err := s.categories.AddCategory(ctx, CategoryRequest{Name: "Lighting"})
	require.NoError(t, err)

	req := productRequest("Lamp", "1.00")
	req.CategoryID = c.ID
	p, err := s.products.AddProduct(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, c.ID, p.CategoryID)

	req = productRequest("Bulb", "1.00")
	req.CategoryID = "missing"
	_, err = s.products.AddProduct(ctx, req)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.categories.RetireCategory(ctx, c.ID)
	require.NoError(t, err)

	req = productRequest("Shade", "1.00")
	req.CategoryID = c.ID
	_, err = s.products.AddProduct(ctx, req)
	assert.ErrorIs(t, err, shared.ErrUnavailable)
}

func TestCategoryService_Membership(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	lighting, err := s.categories.AddCategory(ctx, CategoryRequest{Name: "Lighting"})
	require.NoError(t, err)
	decor, err := s.categories.AddCategory(ctx, CategoryRequest{Name: "Decor"})
	require.NoError(t, err)
	lamp, err := s.products.AddProduct(ctx, productRequest("Lamp", "1.00"))
	require.NoError(t, err)

	moved, err := s.categories.AddProductToCategory(ctx, lighting.ID, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, lighting.ID, moved.CategoryID)

	_, err = s.categories.AddProductToCategory(ctx, lighting.ID, lamp.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)

	// adding to another category moves the product
	moved, err = s.categories.AddProductToCategory(ctx, decor.ID, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, decor.ID, moved.CategoryID)

	members, err := s.categories.ListCategoryProducts(ctx, lighting.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	members, err = s.categories.ListCategoryProducts(ctx, decor.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, lamp.ID, members[0].ID)

	_, err = s.categories.RemoveProductFromCategory(ctx, lighting.ID, lamp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// removal works on retired entities
	_, err = s.products.RetireProduct(ctx, lamp.ID)
	require.NoError(t, err)
	_, err = s.categories.RetireCategory(ctx, decor.ID)
	require.NoError(t, err)

	removed, err := s.categories.RemoveProductFromCategory(ctx, decor.ID, lamp.ID)
	require.NoError(t, err)
	assert.Empty(t, removed.CategoryID)

	_, err = s.categories.ListCategoryProducts(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCategoryService_RetiredCategoryRejectsChanges(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	c, err := s.categories.AddCategory(ctx, CategoryRequest{Name: "Garden"})
	require.NoError(t, err)
	p, err := s.products.AddProduct(ctx, productRequest("Hose", "12.00"))
	require.NoError(t, err)

	_, err = s.categories.RetireCategory(ctx, c.ID)
	require.NoError(t, err)

	_, err = s.categories.RetireCategory(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrAlreadyRetired)

	_, err = s.categories.UpdateCategory(ctx, c.ID, CategoryRequest{Name: "Yard"})
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	_, err = s.categories.AddProductToCategory(ctx, c.ID, p.ID)
	assert.ErrorIs(t, err, shared.ErrUnavailable)
}

func TestCategoryService_UniqueName(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.categories.AddCategory(ctx, CategoryRequest{Name: "Kitchen"})
	require.NoError(t, err)
	other, err := s.categories.AddCategory(ctx, CategoryRequest{Name: "Bath"})
	require.NoError(t, err)

	_, err = s.categories.AddCategory(ctx, CategoryRequest{Name: " Kitchen "})
	assert.ErrorIs(t, err, shared.ErrConflict)

	_, err = s.categories.UpdateCategory(ctx, other.ID, CategoryRequest{Name: "Kitchen"})
	assert.ErrorIs(t, err, shared.ErrConflict)

	list, err := s.categories.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Kitchen", list[0].Name)
	assert.Equal(t, "Bath", list[1].Name)
}

func TestTagService_ProductLinks(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	sale, err := s.tags.AddTag(ctx, TagRequest{Name: "Sale", Description: "Discounted"})
	require.NoError(t, err)
	lamp, err := s.products.AddProduct(ctx, productRequest("Lamp", "1.00"))
	require.NoError(t, err)
	chair, err := s.products.AddProduct(ctx, productRequest("Chair", "1.00"))
	require.NoError(t, err)

	tagged, err := s.tags.AddProductToTag(ctx, sale.ID, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{lamp.ID}, tagged.ProductIDs)

	_, err = s.tags.AddProductToTag(ctx, sale.ID, lamp.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)

	_, err = s.tags.AddProductToTag(ctx, sale.ID, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.products.RetireProduct(ctx, chair.ID)
	require.NoError(t, err)
	_, err = s.tags.AddProductToTag(ctx, sale.ID, chair.ID)
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	_, err = s.tags.RemoveProductFromTag(ctx, sale.ID, chair.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.tags.RetireTag(ctx, sale.ID)
	require.NoError(t, err)

	_, err = s.tags.AddProductToTag(ctx, sale.ID, chair.ID)
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	// untagging a retired tag is allowed
	untagged, err := s.tags.RemoveProductFromTag(ctx, sale.ID, lamp.ID)
	require.NoError(t, err)
	assert.Empty(t, untagged.ProductIDs)
	assert.True(t, untagged.Retired)
}

func TestTagService_UpdateAndRetire(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	tag, err := s.tags.AddTag(ctx, TagRequest{Name: "New"})
	require.NoError(t, err)

	updated, err := s.tags.UpdateTag(ctx, tag.ID, TagRequest{Name: "Fresh", Description: "Just in"})
	require.NoError(t, err)
	assert.Equal(t, "Fresh", updated.Name)

	got, err := s.tags.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "Just in", got.Description)

	_, err = s.tags.RetireTag(ctx, tag.ID)
	require.NoError(t, err)
	_, err = s.tags.RetireTag(ctx, tag.ID)
	assert.ErrorIs(t, err, shared.ErrAlreadyRetired)

	_, err = s.tags.UpdateTag(ctx, tag.ID, TagRequest{Name: "Old"})
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	tags, err := s.tags.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}
