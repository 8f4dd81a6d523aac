package mysql

import (
	"context"
	"fmt"

	"ordering/domain/shared"
	"ordering/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OutboxRepository 事务性 outbox：事件与聚合在同一事务内落库，由 OutboxWorker 异步发布
type OutboxRepository struct {
	repository
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{repository{db: db}}
}

func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return fmt.Errorf("invalid domain event: %w", err)
	}

	outboxPO, err := po.FromDomainEvent(event)
	if err != nil {
		return fmt.Errorf("failed to convert domain event: %w", err)
	}

	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(outboxPO).Error; err != nil {
			return fmt.Errorf("failed to save event to outbox: %w", err)
		}
		return nil
	})
}

// GetPendingEvents 按创建顺序取待发布事件
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	var events []*po.OutboxEventPO
	err := r.getDB(ctx).
		Where("status = ?", string(po.EventStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

// MarkEventProcessing 条件更新抢占事件，多个 worker 并行时只有一个成功
func (r *OutboxRepository) MarkEventProcessing(ctx context.Context, eventID string) error {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ? AND status = ?", eventID, string(po.EventStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusProcessing),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found or already being processed: %s", eventID)
	}
	return nil
}

func (r *OutboxRepository) MarkEventPublished(ctx context.Context, eventID string) error {
	return r.setStatus(ctx, eventID, map[string]interface{}{
		"status": string(po.EventStatusPublished),
	})
}

// MarkEventFailed 重试次数未达上限时回到 PENDING，否则置为 FAILED
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, eventID string, maxRetries int) error {
	var event po.OutboxEventPO
	if err := r.getDB(ctx).First(&event, "id = ?", eventID).Error; err != nil {
		return fmt.Errorf("failed to find event: %w", err)
	}

	retryCount := event.RetryCount + 1
	status := po.EventStatusFailed
	if retryCount < maxRetries {
		status = po.EventStatusPending
	}
	return r.setStatus(ctx, eventID, map[string]interface{}{
		"status":      string(status),
		"retry_count": retryCount,
	})
}

func (r *OutboxRepository) setStatus(ctx context.Context, eventID string, columns map[string]interface{}) error {
	columns["updated_at"] = gorm.Expr("NOW()")
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}
	return nil
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
