package mysql

import (
	"context"

	"ordering/domain/product"
	"ordering/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ProductRepository MySQL/GORM implementation of product repository
type ProductRepository struct {
	repository
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{repository{db: db}}
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		productPO := po.FromProductDomain(p)

		if p.IsNew() {
			if err := tx.Create(productPO).Error; err != nil {
				return nameTaken(err, product.EntityName, productPO.Name)
			}
			p.MarkPersisted()
			return nil
		}

		err := updateVersioned(tx, &po.ProductPO{}, product.EntityName, p.ID(), p.Version(), map[string]interface{}{
			"name":        productPO.Name,
			"description": productPO.Description,
			"price":       productPO.Price,
			"category_id": productPO.CategoryID,
			"retired":     productPO.Retired,
			"updated_at":  productPO.UpdatedAt,
		})
		if err != nil {
			return nameTaken(err, product.EntityName, productPO.Name)
		}
		p.IncrementVersionForSave()
		p.MarkPersisted()
		return nil
	})
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var productPO po.ProductPO
	if err := r.getDB(ctx).First(&productPO, "id = ?", id).Error; err != nil {
		return nil, notFound(err, product.EntityName, id)
	}
	return productPO.ToDomain(), nil
}

// FindByIDs 单次 IN 查询，结果按 ids 的顺序返回，缺失的标识被跳过
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	var productPOs []po.ProductPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&productPOs).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]*po.ProductPO, len(productPOs))
	for i := range productPOs {
		byID[productPOs[i].ID] = &productPOs[i]
	}
	products := make([]*product.Product, 0, len(productPOs))
	for _, id := range ids {
		if productPO, ok := byID[id]; ok {
			products = append(products, productPO.ToDomain())
			delete(byID, id)
		}
	}
	return products, nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*product.Product, error) {
	var productPO po.ProductPO
	if err := r.getDB(ctx).Where("name = ?", name).First(&productPO).Error; err != nil {
		return nil, notFound(err, product.EntityName)
	}
	return productPO.ToDomain(), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	return r.find(r.getDB(ctx))
}

func (r *ProductRepository) FindByCategoryID(ctx context.Context, categoryID string) ([]*product.Product, error) {
	return r.find(r.getDB(ctx).Where("category_id = ?", categoryID))
}

func (r *ProductRepository) find(db *gorm.DB) ([]*product.Product, error) {
	var productPOs []po.ProductPO
	if err := db.Order("created_at ASC, id ASC").Find(&productPOs).Error; err != nil {
		return nil, err
	}
	products := make([]*product.Product, len(productPOs))
	for i := range productPOs {
		products[i] = productPOs[i].ToDomain()
	}
	return products, nil
}

var _ product.Repository = (*ProductRepository)(nil)
