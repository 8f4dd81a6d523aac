package mysql

import (
	"fmt"

	"ordering/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate 建表；名称列的 utf8mb4_bin 排序规则与唯一索引由 PO 标签声明
func AutoMigrate(db *gorm.DB) error {
	err := db.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4").AutoMigrate(
		&po.ProductPO{},
		&po.CategoryPO{},
		&po.TagPO{},
		&po.ProductTagPO{},
		&po.OrderPO{},
		&po.OrderLineItemPO{},
		&po.OutboxEventPO{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
