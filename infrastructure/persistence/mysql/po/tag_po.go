package po

import (
	"time"

	"ordering/domain/tag"
)

// TagPO 标签持久化对象
type TagPO struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"type:varchar(100) COLLATE utf8mb4_bin;uniqueIndex;not null"`
	Description string    `gorm:"size:200;not null;default:''"`
	Retired     bool      `gorm:"not null;default:false"`
	Version     int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (TagPO) TableName() string {
	return "tags"
}

// ProductTagPO 标签与商品的多对多关系，由 Tag 聚合整体保存
type ProductTagPO struct {
	TagID     string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"primaryKey;size:36;index"`
}

func (ProductTagPO) TableName() string {
	return "product_tags"
}

func FromTagDomain(t *tag.Tag) (*TagPO, []ProductTagPO) {
	dto := t.ToDTO()
	tagPO := &TagPO{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Retired:     dto.Retired,
		Version:     dto.Version,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}

	links := make([]ProductTagPO, len(dto.ProductIDs))
	for i, productID := range dto.ProductIDs {
		links[i] = ProductTagPO{TagID: dto.ID, ProductID: productID}
	}
	return tagPO, links
}

func (po *TagPO) ToDomain(links []ProductTagPO) *tag.Tag {
	productIDs := make([]string, len(links))
	for i, link := range links {
		productIDs[i] = link.ProductID
	}
	return tag.RebuildFromDTO(tag.ReconstructionDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		ProductIDs:  productIDs,
		Retired:     po.Retired,
		Version:     po.Version,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}
