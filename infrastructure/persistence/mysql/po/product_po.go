package po

import (
	"time"

	"ordering/domain/product"
	"ordering/domain/shared"

	"github.com/shopspring/decimal"
)

// ProductPO 商品持久化对象
// 分类关系只保存 category_id，不定义 GORM 关联
type ProductPO struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Name        string          `gorm:"type:varchar(100) COLLATE utf8mb4_bin;uniqueIndex;not null"` // 名称精确匹配，区分大小写
	Description string          `gorm:"size:200;not null;default:''"`
	Price       decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	CategoryID  string          `gorm:"size:36;index;not null;default:''"`
	Retired     bool            `gorm:"not null;default:false"`
	Version     int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *product.Product) *ProductPO {
	dto := p.ToDTO()
	return &ProductPO{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price.Amount(),
		CategoryID:  dto.CategoryID,
		Retired:     dto.Retired,
		Version:     dto.Version,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}

func (po *ProductPO) ToDomain() *product.Product {
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Price:       shared.NewMoney(po.Price),
		CategoryID:  po.CategoryID,
		Retired:     po.Retired,
		Version:     po.Version,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}
