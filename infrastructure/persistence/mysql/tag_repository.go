package mysql

import (
	"context"

	"ordering/domain/tag"
	"ordering/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// TagRepository 标签及其 product_tags 关系作为一个聚合整体保存
type TagRepository struct {
	repository
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{repository{db: db}}
}

func (r *TagRepository) Save(ctx context.Context, t *tag.Tag) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		tagPO, links := po.FromTagDomain(t)

		if t.IsNew() {
			if err := tx.Create(tagPO).Error; err != nil {
				return nameTaken(err, tag.EntityName, tagPO.Name)
			}
		} else {
			err := updateVersioned(tx, &po.TagPO{}, tag.EntityName, t.ID(), t.Version(), map[string]interface{}{
				"name":        tagPO.Name,
				"description": tagPO.Description,
				"retired":     tagPO.Retired,
				"updated_at":  tagPO.UpdatedAt,
			})
			if err != nil {
				return nameTaken(err, tag.EntityName, tagPO.Name)
			}
		}

		// 关系表采用先删后插
		if err := tx.Where("tag_id = ?", t.ID()).Delete(&po.ProductTagPO{}).Error; err != nil {
			return err
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		if !t.IsNew() {
			t.IncrementVersionForSave()
		}
		t.MarkPersisted()
		return nil
	})
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*tag.Tag, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	db := r.getDB(ctx)
	var tagPO po.TagPO
	if err := db.First(&tagPO, "id = ?", id).Error; err != nil {
		return nil, notFound(err, tag.EntityName, id)
	}
	return r.load(db, tagPO)
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*tag.Tag, error) {
	db := r.getDB(ctx)
	var tagPO po.TagPO
	if err := db.Where("name = ?", name).First(&tagPO).Error; err != nil {
		return nil, notFound(err, tag.EntityName)
	}
	return r.load(db, tagPO)
}

// FindAll 关系行通过一次 IN 查询批量加载
func (r *TagRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	db := r.getDB(ctx)
	var tagPOs []po.TagPO
	if err := db.Order("created_at ASC, id ASC").Find(&tagPOs).Error; err != nil {
		return nil, err
	}
	if len(tagPOs) == 0 {
		return []*tag.Tag{}, nil
	}

	ids := make([]string, len(tagPOs))
	for i := range tagPOs {
		ids[i] = tagPOs[i].ID
	}
	var links []po.ProductTagPO
	if err := db.Where("tag_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, err
	}
	byTag := make(map[string][]po.ProductTagPO, len(tagPOs))
	for _, link := range links {
		byTag[link.TagID] = append(byTag[link.TagID], link)
	}

	tags := make([]*tag.Tag, len(tagPOs))
	for i := range tagPOs {
		tags[i] = tagPOs[i].ToDomain(byTag[tagPOs[i].ID])
	}
	return tags, nil
}

func (r *TagRepository) load(db *gorm.DB, tagPO po.TagPO) (*tag.Tag, error) {
	var links []po.ProductTagPO
	if err := db.Where("tag_id = ?", tagPO.ID).Find(&links).Error; err != nil {
		return nil, err
	}
	return tagPO.ToDomain(links), nil
}

var _ tag.Repository = (*TagRepository)(nil)
