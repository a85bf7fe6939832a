// Package events 提供領域事件發布器實作。
package events

import (
	"log/slog"
	"sync"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// 事件發布器實作
// ===========================

// LoggingEventPublisher 日誌事件發布器
//
// 把事件以結構化日誌輸出。適合尚未接入訊息佇列的部署，
// 以及作為其他發布器的除錯包裝。
type LoggingEventPublisher struct {
	logger *slog.Logger
}

// NewLoggingEventPublisher 創建日誌事件發布器
//
// logger 為 nil 時丟棄所有日誌輸出。
func NewLoggingEventPublisher(logger *slog.Logger) *LoggingEventPublisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LoggingEventPublisher{logger: logger}
}

// Publish 發布單一事件
func (p *LoggingEventPublisher) Publish(event shared.DomainEvent) error {
	p.logger.Info("領域事件",
		"event_id", event.EventID(),
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
		"occurred_at", event.OccurredAt(),
	)
	return nil
}

// PublishBatch 依序發布多個事件
func (p *LoggingEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

// InMemoryEventPublisher 記憶體事件收集器
//
// 把事件收集到切片，供測試驗證發布的事件內容與順序。
type InMemoryEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

// NewInMemoryEventPublisher 創建記憶體事件收集器
func NewInMemoryEventPublisher() *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		events: []shared.DomainEvent{},
	}
}

// Publish 收集單一事件
func (p *InMemoryEventPublisher) Publish(event shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

// PublishBatch 依序收集多個事件
func (p *InMemoryEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, events...)
	return nil
}

// Events 獲取已收集的事件副本
func (p *InMemoryEventPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]shared.DomainEvent{}, p.events...)
}

// Clear 清空已收集的事件
func (p *InMemoryEventPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = []shared.DomainEvent{}
}
