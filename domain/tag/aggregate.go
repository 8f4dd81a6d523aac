// Package tag labels products. A tag owns its set of product ids.
package tag

import (
	"fmt"
	"sort"
	"time"

	"ordering/domain/shared"

	"github.com/google/uuid"
)

const EntityName = "tag"

// Tag aggregate root
type Tag struct {
	id          string
	name        string
	description string
	productIDs  map[string]struct{}
	retirement  shared.Retirement
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	shared.EventRecorder
	isNew bool
}

func NewTag(name, description string) (*Tag, error) {
	name, description, err := normalize(name, description)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tag ID: %w", err)
	}

	now := time.Now()
	return &Tag{
		id:          id.String(),
		name:        name,
		description: description,
		productIDs:  make(map[string]struct{}),
		createdAt:   now,
		updatedAt:   now,
		isNew:       true,
	}, nil
}

func normalize(name, description string) (string, string, error) {
	name, err := shared.NormalizeName(EntityName, name)
	if err != nil {
		return "", "", err
	}
	description, err = shared.NormalizeDescription(EntityName, description)
	if err != nil {
		return "", "", err
	}
	return name, description, nil
}

// ReconstructionDTO is for repository implementations only
type ReconstructionDTO struct {
	ID          string
	Name        string
	Description string
	ProductIDs  []string
	Retired     bool
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Tag {
	ids := make(map[string]struct{}, len(dto.ProductIDs))
	for _, id := range dto.ProductIDs {
		ids[id] = struct{}{}
	}
	return &Tag{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		productIDs:  ids,
		retirement:  shared.RestoreRetirement(dto.Retired),
		version:     dto.Version,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

func (t *Tag) ToDTO() ReconstructionDTO {
	return ReconstructionDTO{
		ID:          t.id,
		Name:        t.name,
		Description: t.description,
		ProductIDs:  t.ProductIDs(),
		Retired:     t.retirement.IsRetired(),
		Version:     t.version,
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
	}
}

func (t *Tag) Update(name, description string) error {
	if err := t.retirement.EnsureActive(EntityName, t.id); err != nil {
		return err
	}
	name, description, err := normalize(name, description)
	if err != nil {
		return err
	}
	t.name = name
	t.description = description
	t.updatedAt = time.Now()
	return nil
}

func (t *Tag) Retire() error {
	if err := t.retirement.Retire(EntityName, t.id); err != nil {
		return err
	}
	t.updatedAt = time.Now()
	t.Record(shared.NewEvent("tag.retired", EntityName, t.id, map[string]interface{}{
		"name": t.name,
	}))
	return nil
}

// AddProduct tags productID. The caller checks the product itself is active.
func (t *Tag) AddProduct(productID string) error {
	if err := t.retirement.EnsureActive(EntityName, t.id); err != nil {
		return err
	}
	if _, ok := t.productIDs[productID]; ok {
		return shared.NewConflictError(EntityName,
			fmt.Sprintf("product %s is already tagged %s", productID, t.id), productID)
	}
	t.productIDs[productID] = struct{}{}
	t.updatedAt = time.Now()
	return nil
}

// RemoveProduct is allowed on retired tags
func (t *Tag) RemoveProduct(productID string) error {
	if _, ok := t.productIDs[productID]; !ok {
		return shared.NewNotMemberError("product", productID, EntityName, t.id)
	}
	delete(t.productIDs, productID)
	t.updatedAt = time.Now()
	return nil
}

// ProductIDs returns the tagged product ids in sorted order
func (t *Tag) ProductIDs() []string {
	ids := make([]string, 0, len(t.productIDs))
	for id := range t.productIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnsureAvailable fails with ErrUnavailable once retired
func (t *Tag) EnsureAvailable() error {
	return t.retirement.EnsureActive(EntityName, t.id)
}

func (t *Tag) HasProduct(productID string) bool {
	_, ok := t.productIDs[productID]
	return ok
}

func (t *Tag) IncrementVersionForSave() { t.version++ }
func (t *Tag) MarkPersisted()           { t.isNew = false }

func (t *Tag) ID() string           { return t.id }
func (t *Tag) Name() string         { return t.name }
func (t *Tag) Description() string  { return t.description }
func (t *Tag) IsRetired() bool      { return t.retirement.IsRetired() }
func (t *Tag) Version() int         { return t.version }
func (t *Tag) CreatedAt() time.Time { return t.createdAt }
func (t *Tag) UpdatedAt() time.Time { return t.updatedAt }
func (t *Tag) IsNew() bool          { return t.isNew }

var _ shared.AggregateRoot = (*Tag)(nil)
