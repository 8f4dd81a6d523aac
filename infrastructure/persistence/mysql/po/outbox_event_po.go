package po

import (
	"encoding/json"
	"time"

	"ordering/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO Outbox event persistence object
type OutboxEventPO struct {
	ID            string    `gorm:"primaryKey;size:36"`
	AggregateType string    `gorm:"size:50;not null;default:''"`
	AggregateID   string    `gorm:"size:36;index;not null"`
	EventType     string    `gorm:"size:100;index;not null"`          // e.g. "order.created", "product.retired"
	Payload       string    `gorm:"type:json;not null"`               // JSON serialized event data
	Status        string    `gorm:"size:20;default:PENDING;not null"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount    int       `gorm:"default:0;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus Outbox event status enum
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent Convert domain event to outbox persistence object
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	eventData := map[string]interface{}{
		"event_name":   event.EventName(),
		"aggregate_id": event.GetAggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	var aggregateType string
	if pe, ok := event.(shared.PayloadEvent); ok {
		aggregateType = pe.AggregateType()
		eventData["aggregate_type"] = aggregateType
		eventData["data"] = pe.Payload()
	}

	payload, err := json.Marshal(eventData)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &OutboxEventPO{
		ID:            uuid.NewString(),
		AggregateType: aggregateType,
		AggregateID:   event.GetAggregateID(),
		EventType:     event.EventName(),
		Payload:       string(payload),
		Status:        string(EventStatusPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ToEventData decodes the payload, for debugging and tests
func (po *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
