package order

import (
	"context"

	"ordering/domain/shared"
)

// CatalogProduct is the view of a product the basket needs
type CatalogProduct struct {
	ID      string
	Name    string
	Price   shared.Money
	Retired bool
}

// Catalog resolves products for the basket.
// Defined here so the order package does not depend on the product package.
type Catalog interface {
	// LookupProducts resolves ids in one batch. Missing ids are absent from the map.
	LookupProducts(ctx context.Context, ids []string) (map[string]CatalogProduct, error)
}

// DomainService Order domain service
// It validates basket requests against the catalog; persistence stays in the application layer.
type DomainService struct {
	catalog Catalog
}

func NewDomainService(catalog Catalog) *DomainService {
	return &DomainService{catalog: catalog}
}

// CheckBasket validates a full basket request in this order:
// quantities, every missing product, every retired product, duplicated product ids.
func (s *DomainService) CheckBasket(ctx context.Context, requests []LineRequest) error {
	if err := validateQuantities(requests); err != nil {
		return err
	}

	ids := UniqueProductIDs(requests)
	if len(ids) > 0 {
		products, err := s.catalog.LookupProducts(ctx, ids)
		if err != nil {
			return err
		}
		if err := checkResolved(ids, products); err != nil {
			return err
		}
	}

	return rejectDuplicates(requests)
}

// CheckAddable resolves one product for Add-one: it must exist and be active
func (s *DomainService) CheckAddable(ctx context.Context, productID string) error {
	products, err := s.catalog.LookupProducts(ctx, []string{productID})
	if err != nil {
		return err
	}
	return checkResolved([]string{productID}, products)
}

// CheckExists resolves one product for Update-quantity. Retired products may
// keep their existing lines, so only existence is checked.
func (s *DomainService) CheckExists(ctx context.Context, productID string) error {
	products, err := s.catalog.LookupProducts(ctx, []string{productID})
	if err != nil {
		return err
	}
	if _, ok := products[productID]; !ok {
		return shared.NewNotFoundError("product", productID)
	}
	return nil
}

func checkResolved(ids []string, products map[string]CatalogProduct) error {
	var missing, retired []string
	for _, id := range ids {
		p, ok := products[id]
		switch {
		case !ok:
			missing = append(missing, id)
		case p.Retired:
			retired = append(retired, id)
		}
	}
	if len(missing) > 0 {
		return shared.NewNotFoundError("product", missing...)
	}
	if len(retired) > 0 {
		return shared.NewUnavailableError("product", retired...)
	}
	return nil
}

// Value prices the given orders with one catalog lookup
func (s *DomainService) Value(ctx context.Context, orders ...*Order) ([]Valuation, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, o := range orders {
		for _, id := range o.ProductIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	products := map[string]CatalogProduct{}
	if len(ids) > 0 {
		var err error
		products, err = s.catalog.LookupProducts(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	valuations := make([]Valuation, 0, len(orders))
	for _, o := range orders {
		v, err := Valuate(o.LineItems(), products)
		if err != nil {
			return nil, err
		}
		valuations = append(valuations, v)
	}
	return valuations, nil
}
