package order

import (
	"context"

	"ordering/domain/order"
	"ordering/domain/product"
)

// productCatalog adapts product.Repository to order.Catalog
type productCatalog struct {
	products product.Repository
}

func newProductCatalog(products product.Repository) *productCatalog {
	return &productCatalog{products: products}
}

func (c *productCatalog) LookupProducts(ctx context.Context, ids []string) (map[string]order.CatalogProduct, error) {
	found, err := c.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make(map[string]order.CatalogProduct, len(found))
	for _, p := range found {
		result[p.ID()] = order.CatalogProduct{
			ID:      p.ID(),
			Name:    p.Name(),
			Price:   p.Price(),
			Retired: p.IsRetired(),
		}
	}
	return result, nil
}

var _ order.Catalog = (*productCatalog)(nil)
