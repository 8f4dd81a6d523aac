package po

import (
	"time"

	"ordering/domain/category"
)

// CategoryPO 分类持久化对象，成员关系存放在 products.category_id
type CategoryPO struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"type:varchar(100) COLLATE utf8mb4_bin;uniqueIndex;not null"`
	Description string    `gorm:"size:200;not null;default:''"`
	Retired     bool      `gorm:"not null;default:false"`
	Version     int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (CategoryPO) TableName() string {
	return "categories"
}

func FromCategoryDomain(c *category.Category) *CategoryPO {
	dto := c.ToDTO()
	return &CategoryPO{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Retired:     dto.Retired,
		Version:     dto.Version,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}

func (po *CategoryPO) ToDomain() *category.Category {
	return category.RebuildFromDTO(category.ReconstructionDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Retired:     po.Retired,
		Version:     po.Version,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}
