package shared

import "time"

// DomainEvent 領域事件基礎介面
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型
	OccurredAt() time.Time // 發生時間
	AggregateID() string   // 聚合根 ID
}

// EventPublisher 事件發布器介面
//
// 設計原則：介面定義在 Domain Layer（使用者），由 Infrastructure 實作
//
// 事件交接契約（與聚合根配合使用）：
// 1. 聚合根在命令方法中緩衝事件（不自行發布）
// 2. Application Layer 在持久化成功後讀取 Events()
// 3. 透過 Publisher 依發生順序發布
// 4. 發布完成後調用 ClearEvents() 清空緩衝
//
// 核心不要求發布確認；發布失敗的重試策略屬於 Infrastructure 的職責
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishBatch(events []DomainEvent) error
}
