package po

import (
	"time"

	"ordering/domain/order"
)

// OrderPO Order persistence object
// Totals are derived from live product prices and never stored
type OrderPO struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Status    string    `gorm:"size:20;not null"`
	Version   int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderLineItemPO one basket row, identified by (order_id, product_id)
type OrderLineItemPO struct {
	OrderID   string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"primaryKey;size:36;index"`
	Quantity  int    `gorm:"not null"`
	Position  int    `gorm:"not null"` // keeps basket insertion order
}

func (OrderLineItemPO) TableName() string {
	return "order_line_items"
}

func FromOrderDomain(o *order.Order) (*OrderPO, []OrderLineItemPO) {
	dto := o.ToDTO()
	orderPO := &OrderPO{
		ID:        dto.ID,
		Status:    string(dto.Status),
		Version:   dto.Version,
		CreatedAt: dto.CreatedOn,
		UpdatedAt: dto.LastUpdated,
	}

	items := make([]OrderLineItemPO, len(dto.LineItems))
	for i, item := range dto.LineItems {
		items[i] = OrderLineItemPO{
			OrderID:   dto.ID,
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Position:  i,
		}
	}
	return orderPO, items
}

// ToDomain expects itemPOs ordered by position
func (po *OrderPO) ToDomain(itemPOs []OrderLineItemPO) (*order.Order, error) {
	status, err := order.ParseStatus(po.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.NewLineItem(itemPO.ProductID, itemPO.Quantity)
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:          po.ID,
		Status:      status,
		LineItems:   items,
		Version:     po.Version,
		CreatedOn:   po.CreatedAt,
		LastUpdated: po.UpdatedAt,
	}), nil
}
