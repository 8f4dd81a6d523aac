/*
Package product Product subdomain

A Product is a priced catalog entry. It belongs to at most one Category,
can be retired, and is never deleted: historical order lines keep
referring to it.
*/
package product

import (
	"fmt"
	"time"

	"ordering/domain/shared"

	"github.com/google/uuid"
)

// EntityName is used in error messages and outbox rows
const EntityName = "product"

// Product aggregate root
type Product struct {
	id          string
	name        string
	description string
	price       shared.Money
	categoryID  string
	retirement  shared.Retirement
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	shared.EventRecorder
	isNew bool
}

// Details are the mutable attributes supplied on create and update
type Details struct {
	Name        string
	Description string
	Price       shared.Money
}

func (d Details) normalize() (Details, error) {
	name, err := shared.NormalizeName(EntityName, d.Name)
	if err != nil {
		return Details{}, err
	}
	description, err := shared.NormalizeDescription(EntityName, d.Description)
	if err != nil {
		return Details{}, err
	}
	if !d.Price.IsPositive() {
		return Details{}, shared.NewValidationError(EntityName, "price", "product price must be greater than zero")
	}
	return Details{Name: name, Description: description, Price: d.Price}, nil
}

// NewProduct creates an active product. Name uniqueness is checked by DomainService.
func NewProduct(details Details) (*Product, error) {
	details, err := details.normalize()
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now()
	return &Product{
		id:          id.String(),
		name:        details.Name,
		description: details.Description,
		price:       details.Price,
		createdAt:   now,
		updatedAt:   now,
		isNew:       true,
	}, nil
}

// ReconstructionDTO is for repository implementations only
type ReconstructionDTO struct {
	ID          string
	Name        string
	Description string
	Price       shared.Money
	CategoryID  string
	Retired     bool
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO reconstructs a persisted product
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		categoryID:  dto.CategoryID,
		retirement:  shared.RestoreRetirement(dto.Retired),
		version:     dto.Version,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

// ToDTO is the inverse of RebuildFromDTO
func (p *Product) ToDTO() ReconstructionDTO {
	return ReconstructionDTO{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		Price:       p.price,
		CategoryID:  p.categoryID,
		Retired:     p.retirement.IsRetired(),
		Version:     p.version,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}

// Update replaces name, description and price. Retired products are frozen.
func (p *Product) Update(details Details) error {
	if err := p.retirement.EnsureActive(EntityName, p.id); err != nil {
		return err
	}
	details, err := details.normalize()
	if err != nil {
		return err
	}

	p.name = details.Name
	p.description = details.Description
	p.price = details.Price
	p.updatedAt = time.Now()
	return nil
}

// Retire is irreversible
func (p *Product) Retire() error {
	if err := p.retirement.Retire(EntityName, p.id); err != nil {
		return err
	}
	p.updatedAt = time.Now()
	p.Record(shared.NewEvent("product.retired", EntityName, p.id, map[string]interface{}{
		"name": p.name,
	}))
	return nil
}

// AssignCategory moves the product into categoryID
func (p *Product) AssignCategory(categoryID string) error {
	if err := p.retirement.EnsureActive(EntityName, p.id); err != nil {
		return err
	}
	if p.categoryID == categoryID {
		return shared.NewConflictError(EntityName,
			fmt.Sprintf("product %s is already in category %s", p.id, categoryID), p.id)
	}
	p.categoryID = categoryID
	p.updatedAt = time.Now()
	return nil
}

// UnassignCategory removes the product from categoryID. Allowed on retired products.
func (p *Product) UnassignCategory(categoryID string) error {
	if p.categoryID != categoryID {
		return shared.NewNotMemberError(EntityName, p.id, "category", categoryID)
	}
	p.categoryID = ""
	p.updatedAt = time.Now()
	return nil
}

// EnsureAvailable fails with ErrUnavailable for retired products
func (p *Product) EnsureAvailable() error {
	return p.retirement.EnsureActive(EntityName, p.id)
}

// IncrementVersionForSave is called by the repository after a successful write
func (p *Product) IncrementVersionForSave() {
	p.version++
}

// MarkPersisted clears the new flag after the first insert
func (p *Product) MarkPersisted() {
	p.isNew = false
}

func (p *Product) ID() string           { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) CategoryID() string   { return p.categoryID }
func (p *Product) IsRetired() bool      { return p.retirement.IsRetired() }
func (p *Product) Version() int         { return p.version }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
func (p *Product) IsNew() bool          { return p.isNew }

var _ shared.AggregateRoot = (*Product)(nil)
