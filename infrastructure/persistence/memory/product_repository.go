package memory

import (
	"context"
	"time"

	"ordering/domain/product"
	"ordering/domain/shared"
)

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func productRowVersion(d product.ReconstructionDTO) int         { return d.Version }
func productRowName(d product.ReconstructionDTO) string         { return d.Name }
func productRowID(d product.ReconstructionDTO) string           { return d.ID }
func productRowCreatedAt(d product.ReconstructionDTO) time.Time { return d.CreatedAt }

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := checkWrite(r.store.products, product.EntityName, p.ID(), p.IsNew(), p.Version(), productRowVersion); err != nil {
		return err
	}
	if err := checkUniqueName(r.store.products, product.EntityName, p.ID(), p.Name(), productRowName); err != nil {
		return err
	}

	if !p.IsNew() {
		p.IncrementVersionForSave()
	}
	r.store.products[p.ID()] = p.ToDTO()
	p.MarkPersisted()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.products[id]
	if !ok {
		return nil, shared.NewNotFoundError(product.EntityName, id)
	}
	return product.RebuildFromDTO(dto), nil
}

// FindByIDs keeps the order of ids and skips the ones it cannot find
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[string]bool, len(ids))
	products := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if dto, ok := r.store.products[id]; ok {
			products = append(products, product.RebuildFromDTO(dto))
		}
	}
	return products, nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := findByName(r.store.products, name, productRowName)
	if !ok {
		return nil, shared.NewNotFoundError(product.EntityName)
	}
	return product.RebuildFromDTO(dto), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	return r.find(nil), nil
}

func (r *ProductRepository) FindByCategoryID(ctx context.Context, categoryID string) ([]*product.Product, error) {
	return r.find(func(d product.ReconstructionDTO) bool { return d.CategoryID == categoryID }), nil
}

func (r *ProductRepository) find(keep func(product.ReconstructionDTO) bool) []*product.Product {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := rowsByCreation(r.store.products, keep, productRowCreatedAt, productRowID)
	products := make([]*product.Product, len(rows))
	for i, dto := range rows {
		products[i] = product.RebuildFromDTO(dto)
	}
	return products
}

var _ product.Repository = (*ProductRepository)(nil)
