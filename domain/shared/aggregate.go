package shared

// AggregateRoot 聚合根接口
// 聚合根维护一致性边界，所有修改必须通过聚合根进行，并负责记录领域事件
type AggregateRoot interface {
	// ID 返回聚合根的全局唯一标识
	ID() string

	// Version 返回当前版本号，用于乐观锁并发控制
	Version() int

	// PullEvents 获取并清空聚合根记录的领域事件
	PullEvents() []DomainEvent
}

// EventRecorder 聚合根内嵌的事件缓冲区
type EventRecorder struct {
	events []DomainEvent
}

// Record 记录一个领域事件
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents 取出并清空已记录事件
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// PendingEvents 未被取出的事件数量
func (r *EventRecorder) PendingEvents() int {
	return len(r.events)
}
