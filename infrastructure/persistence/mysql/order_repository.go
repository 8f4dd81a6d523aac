package mysql

import (
	"context"

	"ordering/domain/order"
	"ordering/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of order repository
// Line items are saved by hand (delete then insert); GORM associations are not used
type OrderRepository struct {
	repository
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{repository{db: db}}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		orderPO, itemPOs := po.FromOrderDomain(o)

		if o.IsNew() {
			if err := tx.Create(orderPO).Error; err != nil {
				return err
			}
		} else {
			err := updateVersioned(tx, &po.OrderPO{}, order.EntityName, o.ID(), o.Version(), map[string]interface{}{
				"status":     orderPO.Status,
				"updated_at": orderPO.UpdatedAt,
			})
			if err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderLineItemPO{}).Error; err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}

		if !o.IsNew() {
			o.IncrementVersionForSave()
		}
		o.MarkPersisted()
		return nil
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	db := r.getDB(ctx)
	var orderPO po.OrderPO
	if err := db.First(&orderPO, "id = ?", id).Error; err != nil {
		return nil, notFound(err, order.EntityName, id)
	}

	var itemPOs []po.OrderLineItemPO
	if err := db.Where("order_id = ?", id).Order("position ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs)
}

// FindAll newest first; line items are loaded with one batch query
func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO
	if err := db.Order("created_at DESC, id DESC").Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}

	ids := make([]string, len(orderPOs))
	for i := range orderPOs {
		ids[i] = orderPOs[i].ID
	}
	var itemPOs []po.OrderLineItemPO
	if err := db.Where("order_id IN ?", ids).Order("order_id, position ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[string][]po.OrderLineItemPO, len(orderPOs))
	for _, item := range itemPOs {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		o, err := orderPOs[i].ToDomain(byOrder[orderPOs[i].ID])
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}
	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)
