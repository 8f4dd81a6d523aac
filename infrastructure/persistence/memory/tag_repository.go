package memory

import (
	"context"
	"time"

	"ordering/domain/shared"
	"ordering/domain/tag"
)

type TagRepository struct {
	store *Store
}

func NewTagRepository(store *Store) *TagRepository {
	return &TagRepository{store: store}
}

func (r *TagRepository) Save(ctx context.Context, t *tag.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	err := checkWrite(r.store.tags, tag.EntityName, t.ID(), t.IsNew(), t.Version(),
		func(d tag.ReconstructionDTO) int { return d.Version })
	if err != nil {
		return err
	}
	err = checkUniqueName(r.store.tags, tag.EntityName, t.ID(), t.Name(),
		func(d tag.ReconstructionDTO) string { return d.Name })
	if err != nil {
		return err
	}

	if !t.IsNew() {
		t.IncrementVersionForSave()
	}
	r.store.tags[t.ID()] = t.ToDTO()
	t.MarkPersisted()
	return nil
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*tag.Tag, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.tags[id]
	if !ok {
		return nil, shared.NewNotFoundError(tag.EntityName, id)
	}
	return tag.RebuildFromDTO(dto), nil
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*tag.Tag, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := findByName(r.store.tags, name, func(d tag.ReconstructionDTO) string { return d.Name })
	if !ok {
		return nil, shared.NewNotFoundError(tag.EntityName)
	}
	return tag.RebuildFromDTO(dto), nil
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := rowsByCreation(r.store.tags, nil,
		func(d tag.ReconstructionDTO) time.Time { return d.CreatedAt },
		func(d tag.ReconstructionDTO) string { return d.ID })
	tags := make([]*tag.Tag, len(rows))
	for i, dto := range rows {
		tags[i] = tag.RebuildFromDTO(dto)
	}
	return tags, nil
}

var _ tag.Repository = (*TagRepository)(nil)
