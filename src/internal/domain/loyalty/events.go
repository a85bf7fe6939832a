package loyalty

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// LoyaltyAccount 領域事件
// ===========================
//
// 設計原則：
// - 事件是純通知（沒有行為），字段在建構時固定
// - occurredAt 在建構時取當前時間，之後不再改變
// - 事件由聚合根緩衝，Application Layer 在持久化成功後發布

// AccountCreatedEvent 帳戶創建事件
type AccountCreatedEvent struct {
	eventID    string
	accountID  AccountID
	customerID CustomerID
	occurredAt time.Time
}

// NewAccountCreatedEvent 創建帳戶創建事件
func NewAccountCreatedEvent(accountID AccountID, customerID CustomerID) *AccountCreatedEvent {
	return &AccountCreatedEvent{
		eventID:    uuid.New().String(),
		accountID:  accountID,
		customerID: customerID,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *AccountCreatedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *AccountCreatedEvent) EventType() string {
	return "loyalty.account_created"
}

// OccurredAt 實現 DomainEvent 介面
func (e *AccountCreatedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *AccountCreatedEvent) AggregateID() string {
	return e.accountID.String()
}

// AccountID 獲取帳戶 ID
func (e *AccountCreatedEvent) AccountID() AccountID {
	return e.accountID
}

// CustomerID 獲取客戶 ID
func (e *AccountCreatedEvent) CustomerID() CustomerID {
	return e.customerID
}

// ===========================
// PointsEarned 領域事件
// ===========================

// PointsEarnedEvent 積分已賺取事件
//
// 攜帶操作完成後立即可觀察的餘額：
// - availableAfter：可用積分（賺取不變動可用積分）
// - pendingAfter：待確認積分（已包含本次賺取）
type PointsEarnedEvent struct {
	eventID        string
	accountID      AccountID
	transaction    *PointsTransaction
	availableAfter Points
	pendingAfter   Points
	occurredAt     time.Time
}

// NewPointsEarnedEvent 創建積分已賺取事件
func NewPointsEarnedEvent(
	accountID AccountID,
	transaction *PointsTransaction,
	availableAfter Points,
	pendingAfter Points,
) *PointsEarnedEvent {
	return &PointsEarnedEvent{
		eventID:        uuid.New().String(),
		accountID:      accountID,
		transaction:    transaction,
		availableAfter: availableAfter,
		pendingAfter:   pendingAfter,
		occurredAt:     time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsEarnedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsEarnedEvent) EventType() string {
	return "loyalty.points_earned"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsEarnedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsEarnedEvent) AggregateID() string {
	return e.accountID.String()
}

// AccountID 獲取帳戶 ID
func (e *PointsEarnedEvent) AccountID() AccountID {
	return e.accountID
}

// Transaction 獲取本次賺取的交易記錄
func (e *PointsEarnedEvent) Transaction() *PointsTransaction {
	return e.transaction
}

// AvailableAfter 獲取操作後的可用積分
func (e *PointsEarnedEvent) AvailableAfter() Points {
	return e.availableAfter
}

// PendingAfter 獲取操作後的待確認積分
func (e *PointsEarnedEvent) PendingAfter() Points {
	return e.pendingAfter
}

// ===========================
// PointsRedeemed 領域事件
// ===========================

// PointsRedeemedEvent 積分已兌換事件
type PointsRedeemedEvent struct {
	eventID        string
	accountID      AccountID
	transaction    *PointsTransaction
	availableAfter Points
	occurredAt     time.Time
}

// NewPointsRedeemedEvent 創建積分已兌換事件
func NewPointsRedeemedEvent(
	accountID AccountID,
	transaction *PointsTransaction,
	availableAfter Points,
) *PointsRedeemedEvent {
	return &PointsRedeemedEvent{
		eventID:        uuid.New().String(),
		accountID:      accountID,
		transaction:    transaction,
		availableAfter: availableAfter,
		occurredAt:     time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) EventType() string {
	return "loyalty.points_redeemed"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) AggregateID() string {
	return e.accountID.String()
}

// AccountID 獲取帳戶 ID
func (e *PointsRedeemedEvent) AccountID() AccountID {
	return e.accountID
}

// Transaction 獲取本次兌換的交易記錄
func (e *PointsRedeemedEvent) Transaction() *PointsTransaction {
	return e.transaction
}

// AvailableAfter 獲取操作後的可用積分
func (e *PointsRedeemedEvent) AvailableAfter() Points {
	return e.availableAfter
}
