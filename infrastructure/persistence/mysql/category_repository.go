package mysql

import (
	"context"

	"ordering/domain/category"
	"ordering/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	repository
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{repository{db: db}}
}

func (r *CategoryRepository) Save(ctx context.Context, c *category.Category) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		categoryPO := po.FromCategoryDomain(c)

		if c.IsNew() {
			if err := tx.Create(categoryPO).Error; err != nil {
				return nameTaken(err, category.EntityName, categoryPO.Name)
			}
			c.MarkPersisted()
			return nil
		}

		err := updateVersioned(tx, &po.CategoryPO{}, category.EntityName, c.ID(), c.Version(), map[string]interface{}{
			"name":        categoryPO.Name,
			"description": categoryPO.Description,
			"retired":     categoryPO.Retired,
			"updated_at":  categoryPO.UpdatedAt,
		})
		if err != nil {
			return nameTaken(err, category.EntityName, categoryPO.Name)
		}
		c.IncrementVersionForSave()
		c.MarkPersisted()
		return nil
	})
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var categoryPO po.CategoryPO
	if err := r.getDB(ctx).First(&categoryPO, "id = ?", id).Error; err != nil {
		return nil, notFound(err, category.EntityName, id)
	}
	return categoryPO.ToDomain(), nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var categoryPO po.CategoryPO
	if err := r.getDB(ctx).Where("name = ?", name).First(&categoryPO).Error; err != nil {
		return nil, notFound(err, category.EntityName)
	}
	return categoryPO.ToDomain(), nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	var categoryPOs []po.CategoryPO
	if err := r.getDB(ctx).Order("created_at ASC, id ASC").Find(&categoryPOs).Error; err != nil {
		return nil, err
	}
	categories := make([]*category.Category, len(categoryPOs))
	for i := range categoryPOs {
		categories[i] = categoryPOs[i].ToDomain()
	}
	return categories, nil
}

var _ category.Repository = (*CategoryRepository)(nil)
