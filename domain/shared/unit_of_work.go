package shared

import "context"

// UnitOfWork 管理事务边界与聚合事件收集。
// Execute 内 fn 返回错误时，事务回滚且已登记的事件不会落库。
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
}

// UnitOfWorkFactory 每个用例调用创建独立的 UnitOfWork
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository 事务内保存领域事件
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
