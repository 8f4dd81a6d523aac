package shared

import (
	"fmt"
	"time"
)

// DomainEvent 领域事件
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// PayloadEvent 可提供序列化载荷的事件，outbox 落库时使用
type PayloadEvent interface {
	DomainEvent
	AggregateType() string
	Payload() map[string]interface{}
}

// Event 通用事件实现，各子领域通过 NewEvent 构造
type Event struct {
	name          string
	aggregateType string
	aggregateID   string
	occurredOn    time.Time
	payload       map[string]interface{}
}

// NewEvent 创建领域事件
func NewEvent(name, aggregateType, aggregateID string, payload map[string]interface{}) *Event {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return &Event{
		name:          name,
		aggregateType: aggregateType,
		aggregateID:   aggregateID,
		occurredOn:    time.Now(),
		payload:       payload,
	}
}

func (e *Event) EventName() string               { return e.name }
func (e *Event) OccurredOn() time.Time           { return e.occurredOn }
func (e *Event) GetAggregateID() string          { return e.aggregateID }
func (e *Event) AggregateType() string           { return e.aggregateType }
func (e *Event) Payload() map[string]interface{} { return e.payload }

var _ PayloadEvent = (*Event)(nil)

// ValidateEvent 事件落库前校验
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}
