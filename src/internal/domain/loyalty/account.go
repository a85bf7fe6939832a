package loyalty

import (
	"time"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// LoyaltyAccount 聚合根
// ===========================
//
// 設計原則：
// - 聚合根是餘額不變量的唯一守護者（available、pending、lifetime 永不為負）
// - 兩階段積分流：賺取進入 pending，確認後才移入 available
// - lifetimePoints 只在確認時累加，只增不減
// - 狀態變更產生領域事件，由 Application Layer 在持久化後發布
// - 所有修改方法先驗證、後變更，失敗時聚合狀態保持不變

// LoyaltyAccount 忠誠度積分帳戶聚合根
type LoyaltyAccount struct {
	id              AccountID
	customerID      CustomerID
	availablePoints Points
	pendingPoints   Points
	lifetimePoints  Points
	status          AccountStatus
	createdAt       time.Time
	lastActivityAt  *time.Time
	events          []shared.DomainEvent
}

// NewLoyaltyAccount 創建新的忠誠度帳戶
//
// 新帳戶以 active 狀態、零餘額開始，並緩衝一個 AccountCreatedEvent。
func NewLoyaltyAccount(customerID CustomerID) (*LoyaltyAccount, error) {
	if customerID.IsEmpty() {
		return nil, ErrInvalidCustomerID
	}

	account := &LoyaltyAccount{
		id:              NewAccountID(),
		customerID:      customerID,
		availablePoints: ZeroPoints(),
		pendingPoints:   ZeroPoints(),
		lifetimePoints:  ZeroPoints(),
		status:          StatusActive,
		createdAt:       time.Now(),
		lastActivityAt:  nil,
		events:          []shared.DomainEvent{},
	}

	account.recordEvent(NewAccountCreatedEvent(account.id, account.customerID))

	return account, nil
}

// ReconstructLoyaltyAccount 從持久化資料重建帳戶（僅供 Infrastructure Layer 使用）
//
// 重建時驗證餘額不變量：任何負餘額代表儲存的資料已損壞。
// 重建不產生領域事件。
func ReconstructLoyaltyAccount(
	id AccountID,
	customerID CustomerID,
	availablePoints Points,
	pendingPoints Points,
	lifetimePoints Points,
	status AccountStatus,
	createdAt time.Time,
	lastActivityAt *time.Time,
) (*LoyaltyAccount, error) {
	if availablePoints.Value() < 0 || pendingPoints.Value() < 0 || lifetimePoints.Value() < 0 {
		return nil, ErrCorruptedBalance.WithContext(
			"account_id", id.String(),
			"available_points", availablePoints.Value(),
			"pending_points", pendingPoints.Value(),
			"lifetime_points", lifetimePoints.Value(),
		)
	}

	return &LoyaltyAccount{
		id:              id,
		customerID:      customerID,
		availablePoints: availablePoints,
		pendingPoints:   pendingPoints,
		lifetimePoints:  lifetimePoints,
		status:          status,
		createdAt:       createdAt,
		lastActivityAt:  lastActivityAt,
		events:          []shared.DomainEvent{},
	}, nil
}

// ===========================
// 積分操作
// ===========================

// EarnPoints 賺取積分
//
// 賺取的積分進入 pending，待 ConfirmPendingPoints 確認後才可用。
// 返回本次賺取的交易記錄，並緩衝 PointsEarnedEvent。
func (a *LoyaltyAccount) EarnPoints(points Points, context TransactionContext) (*PointsTransaction, error) {
	if !a.status.CanEarnPoints() {
		return nil, ErrInactiveAccount.WithContext(
			"account_id", a.id.String(),
			"status", a.status.String(),
			"operation", "earn",
		)
	}

	a.pendingPoints = a.pendingPoints.Add(points)
	a.touch()

	transaction := NewPointsTransaction(a.id, TransactionEarn, points, context)
	a.recordEvent(NewPointsEarnedEvent(a.id, transaction, a.availablePoints, a.pendingPoints))

	return transaction, nil
}

// ConfirmPendingPoints 確認待確認積分
//
// 將指定數量（points 為 nil 時為全部）的 pending 積分移入 available，
// 並累加 lifetimePoints。確認不更新 lastActivityAt，因為它是系統
// 動作而非客戶活動。
func (a *LoyaltyAccount) ConfirmPendingPoints(points *Points) error {
	toConfirm := a.pendingPoints
	if points != nil {
		toConfirm = *points
	}

	if toConfirm.GreaterThan(a.pendingPoints) {
		return ErrConfirmExceedsPending.WithContext(
			"account_id", a.id.String(),
			"requested", toConfirm.Value(),
			"pending", a.pendingPoints.Value(),
		)
	}
	if toConfirm.IsZero() {
		return nil
	}

	remaining, err := a.pendingPoints.Subtract(toConfirm)
	if err != nil {
		return err
	}

	a.pendingPoints = remaining
	a.availablePoints = a.availablePoints.Add(toConfirm)
	a.lifetimePoints = a.lifetimePoints.Add(toConfirm)

	return nil
}

// RedeemPoints 兌換積分
//
// 從 available 扣除積分。pending 積分不可兌換。
// 返回本次兌換的交易記錄，並緩衝 PointsRedeemedEvent。
func (a *LoyaltyAccount) RedeemPoints(points Points, context TransactionContext) (*PointsTransaction, error) {
	if !a.status.CanRedeemPoints() {
		return nil, ErrInactiveAccount.WithContext(
			"account_id", a.id.String(),
			"status", a.status.String(),
			"operation", "redeem",
		)
	}
	if points.GreaterThan(a.availablePoints) {
		return nil, ErrInsufficientPoints.WithContext(
			"account_id", a.id.String(),
			"requested", points.Value(),
			"available", a.availablePoints.Value(),
		)
	}

	remaining, err := a.availablePoints.Subtract(points)
	if err != nil {
		return nil, err
	}

	a.availablePoints = remaining
	a.touch()

	transaction := NewPointsTransaction(a.id, TransactionRedeem, points, context)
	a.recordEvent(NewPointsRedeemedEvent(a.id, transaction, a.availablePoints))

	return transaction, nil
}

// CreditAdjustment 信用調整（增加可用積分）
//
// 手動調整直接作用於 available，不經過 pending 確認流程。
// 貸記視同已確認的積分，同步累加 lifetime。
func (a *LoyaltyAccount) CreditAdjustment(points Points, reason string) (*PointsTransaction, error) {
	if !a.status.IsActive() {
		return nil, ErrInactiveAccount.WithContext(
			"account_id", a.id.String(),
			"status", a.status.String(),
			"operation", "adjust",
		)
	}

	a.availablePoints = a.availablePoints.Add(points)
	a.lifetimePoints = a.lifetimePoints.Add(points)
	a.touch()

	context := NewTransactionContext(map[string]interface{}{
		ContextKeyType:   "credit_adjustment",
		ContextKeyReason: reason,
	})

	return NewPointsTransaction(a.id, TransactionAdjustment, points, context), nil
}

// DebitAdjustment 借記調整（減少可用積分）
//
// 扣除超過 available 時靜默封頂為零，交易記錄記載實際扣除的數量。
// lifetime 不受借記影響（歷史累計不回溯）。
func (a *LoyaltyAccount) DebitAdjustment(points Points, reason string) (*PointsTransaction, error) {
	if !a.status.IsActive() {
		return nil, ErrInactiveAccount.WithContext(
			"account_id", a.id.String(),
			"status", a.status.String(),
			"operation", "adjust",
		)
	}

	deducted := points
	if points.GreaterThan(a.availablePoints) {
		deducted = a.availablePoints
	}

	remaining, err := a.availablePoints.Subtract(deducted)
	if err != nil {
		return nil, err
	}

	a.availablePoints = remaining
	a.touch()

	context := NewTransactionContext(map[string]interface{}{
		ContextKeyType:   "debit_adjustment",
		ContextKeyReason: reason,
	})

	return NewPointsTransaction(a.id, TransactionAdjustment, deducted, context), nil
}

// ExpirePoints 過期積分
//
// 過期數量封頂為當前 available，返回實際過期的交易記錄。
// available 為零時不產生交易記錄，返回 nil。
func (a *LoyaltyAccount) ExpirePoints(points Points, reason string) (*PointsTransaction, error) {
	if !a.status.IsActive() {
		return nil, ErrInactiveAccount.WithContext(
			"account_id", a.id.String(),
			"status", a.status.String(),
			"operation", "expire",
		)
	}

	expired := points
	if points.GreaterThan(a.availablePoints) {
		expired = a.availablePoints
	}
	if expired.IsZero() {
		return nil, nil
	}

	remaining, err := a.availablePoints.Subtract(expired)
	if err != nil {
		return nil, err
	}

	a.availablePoints = remaining
	a.touch()

	context := NewTransactionContext(map[string]interface{}{
		ContextKeyType:   "expiration",
		ContextKeyReason: reason,
	})

	return NewPointsTransaction(a.id, TransactionExpire, expired, context), nil
}

// ===========================
// 狀態轉換
// ===========================

// Suspend 暫停帳戶
//
// 暫停保留所有餘額，僅阻止賺取與兌換。
func (a *LoyaltyAccount) Suspend() {
	a.status = StatusSuspended
}

// Activate 啟用帳戶
//
// 任何狀態都可重新啟用，包含已關閉的帳戶。
// 重新啟用不恢復關閉時清零的餘額。
func (a *LoyaltyAccount) Activate() {
	a.status = StatusActive
}

// Close 關閉帳戶
//
// 關閉清零 available 與 pending 積分，積分損失不可逆轉。
// lifetime 積分保留作為歷史記錄。
func (a *LoyaltyAccount) Close() {
	a.availablePoints = ZeroPoints()
	a.pendingPoints = ZeroPoints()
	a.status = StatusClosed
}

// ===========================
// 查詢方法
// ===========================

// ID 獲取帳戶 ID
func (a *LoyaltyAccount) ID() AccountID {
	return a.id
}

// CustomerID 獲取客戶 ID
func (a *LoyaltyAccount) CustomerID() CustomerID {
	return a.customerID
}

// AvailablePoints 獲取可用積分
func (a *LoyaltyAccount) AvailablePoints() Points {
	return a.availablePoints
}

// PendingPoints 獲取待確認積分
func (a *LoyaltyAccount) PendingPoints() Points {
	return a.pendingPoints
}

// LifetimePoints 獲取歷史累計積分
func (a *LoyaltyAccount) LifetimePoints() Points {
	return a.lifetimePoints
}

// Status 獲取帳戶狀態
func (a *LoyaltyAccount) Status() AccountStatus {
	return a.status
}

// CreatedAt 獲取創建時間
func (a *LoyaltyAccount) CreatedAt() time.Time {
	return a.createdAt
}

// LastActivityAt 獲取最後活動時間（從未活動時為 nil）
func (a *LoyaltyAccount) LastActivityAt() *time.Time {
	return a.lastActivityAt
}

// IsActive 檢查帳戶是否為啟用狀態
func (a *LoyaltyAccount) IsActive() bool {
	return a.status.IsActive()
}

// CanRedeemPoints 檢查是否可兌換指定數量的積分
func (a *LoyaltyAccount) CanRedeemPoints(points Points) bool {
	return a.status.CanRedeemPoints() && a.availablePoints.GreaterThanOrEqual(points)
}

// ===========================
// 領域事件
// ===========================

// Events 獲取已緩衝的領域事件
func (a *LoyaltyAccount) Events() []shared.DomainEvent {
	return a.events
}

// ClearEvents 清空已緩衝的領域事件（發布成功後呼叫）
func (a *LoyaltyAccount) ClearEvents() {
	a.events = []shared.DomainEvent{}
}

func (a *LoyaltyAccount) recordEvent(event shared.DomainEvent) {
	a.events = append(a.events, event)
}

func (a *LoyaltyAccount) touch() {
	now := time.Now()
	a.lastActivityAt = &now
}
