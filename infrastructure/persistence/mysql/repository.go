package mysql

import (
	"context"
	"errors"
	"strings"

	"ordering/domain/shared"
	"ordering/infrastructure/persistence"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// repository 各仓储共用的事务获取与乐观锁更新
// GORM 使用规范：禁止使用关联特性，子表由聚合根仓储显式维护
type repository struct {
	db *gorm.DB
}

// getDB 优先使用 UoW 放入 context 的事务
func (r repository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// inTx 在 UoW 事务内直接执行，否则自行开启事务保证聚合写入原子性
func (r repository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// updateVersioned 严格乐观锁：以聚合当前版本为更新条件，影响行数为 0 时区分不存在与并发修改
func updateVersioned(tx *gorm.DB, model interface{}, entity, id string, version int, columns map[string]interface{}) error {
	columns["version"] = version + 1
	result := tx.Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.NewNotFoundError(entity, id)
	}
	return shared.NewConcurrentModificationError(entity, id)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// nameTaken 唯一索引兜底：并发创建同名实体时由数据库拒绝
func nameTaken(err error, entity, name string) error {
	if isDuplicateKeyError(err) {
		return shared.NewConflictError(entity, "a "+entity+" named '"+name+"' already exists")
	}
	return err
}

func notFound(err error, entity string, ids ...string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(entity, ids...)
	}
	return err
}
