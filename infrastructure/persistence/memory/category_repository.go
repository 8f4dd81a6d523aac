package memory

import (
	"context"
	"time"

	"ordering/domain/category"
	"ordering/domain/shared"
)

type CategoryRepository struct {
	store *Store
}

func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) Save(ctx context.Context, c *category.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	err := checkWrite(r.store.categories, category.EntityName, c.ID(), c.IsNew(), c.Version(),
		func(d category.ReconstructionDTO) int { return d.Version })
	if err != nil {
		return err
	}
	err = checkUniqueName(r.store.categories, category.EntityName, c.ID(), c.Name(),
		func(d category.ReconstructionDTO) string { return d.Name })
	if err != nil {
		return err
	}

	if !c.IsNew() {
		c.IncrementVersionForSave()
	}
	r.store.categories[c.ID()] = c.ToDTO()
	c.MarkPersisted()
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.categories[id]
	if !ok {
		return nil, shared.NewNotFoundError(category.EntityName, id)
	}
	return category.RebuildFromDTO(dto), nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := findByName(r.store.categories, name, func(d category.ReconstructionDTO) string { return d.Name })
	if !ok {
		return nil, shared.NewNotFoundError(category.EntityName)
	}
	return category.RebuildFromDTO(dto), nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := rowsByCreation(r.store.categories, nil,
		func(d category.ReconstructionDTO) time.Time { return d.CreatedAt },
		func(d category.ReconstructionDTO) string { return d.ID })
	categories := make([]*category.Category, len(rows))
	for i, dto := range rows {
		categories[i] = category.RebuildFromDTO(dto)
	}
	return categories, nil
}

var _ category.Repository = (*CategoryRepository)(nil)
