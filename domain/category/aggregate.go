// Package category groups products. Membership is stored on the product side.
package category

import (
	"fmt"
	"time"

	"ordering/domain/shared"

	"github.com/google/uuid"
)

const EntityName = "category"

// Category aggregate root
type Category struct {
	id          string
	name        string
	description string
	retirement  shared.Retirement
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	shared.EventRecorder
	isNew bool
}

func NewCategory(name, description string) (*Category, error) {
	name, description, err := normalize(name, description)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category ID: %w", err)
	}

	now := time.Now()
	return &Category{
		id:          id.String(),
		name:        name,
		description: description,
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
	Retired     bool
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Category {
	return &Category{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		retirement:  shared.RestoreRetirement(dto.Retired),
		version:     dto.Version,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

func (c *Category) ToDTO() ReconstructionDTO {
	return ReconstructionDTO{
		ID:          c.id,
		Name:        c.name,
		Description: c.description,
		Retired:     c.retirement.IsRetired(),
		Version:     c.version,
		CreatedAt:   c.createdAt,
		UpdatedAt:   c.updatedAt,
	}
}

// Update renames or re-describes an active category
func (c *Category) Update(name, description string) error {
	if err := c.retirement.EnsureActive(EntityName, c.id); err != nil {
		return err
	}
	name, description, err := normalize(name, description)
	if err != nil {
		return err
	}
	c.name = name
	c.description = description
	c.updatedAt = time.Now()
	return nil
}

// Retire keeps existing product memberships; only new ones are refused
func (c *Category) Retire() error {
	if err := c.retirement.Retire(EntityName, c.id); err != nil {
		return err
	}
	c.updatedAt = time.Now()
	c.Record(shared.NewEvent("category.retired", EntityName, c.id, map[string]interface{}{
		"name": c.name,
	}))
	return nil
}

// EnsureAvailable fails with ErrUnavailable once retired
func (c *Category) EnsureAvailable() error {
	return c.retirement.EnsureActive(EntityName, c.id)
}

// EnsureAcceptsProducts guards new memberships; retired categories take none
func (c *Category) EnsureAcceptsProducts() error {
	return c.EnsureAvailable()
}

func (c *Category) IncrementVersionForSave() { c.version++ }
func (c *Category) MarkPersisted()           { c.isNew = false }

func (c *Category) ID() string           { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) IsRetired() bool      { return c.retirement.IsRetired() }
func (c *Category) Version() int         { return c.version }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }
func (c *Category) IsNew() bool          { return c.isNew }

var _ shared.AggregateRoot = (*Category)(nil)
