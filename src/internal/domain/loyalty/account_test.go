package loyalty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// ===== 測試輔助 =====

func newTestAccount(t *testing.T) *loyalty.LoyaltyAccount {
	t.Helper()

	customerID, err := loyalty.NewCustomerID("CUST-001")
	require.NoError(t, err)

	account, err := loyalty.NewLoyaltyAccount(customerID)
	require.NoError(t, err)

	account.ClearEvents()
	return account
}

func points(t *testing.T, value int) loyalty.Points {
	t.Helper()

	p, err := loyalty.NewPoints(value)
	require.NoError(t, err)
	return p
}

func earnContext() loyalty.TransactionContext {
	return loyalty.EarningContext("electronics", "purchase", nil)
}

// ===== 帳戶創建 =====

// Test 1: 新帳戶以 active 狀態、零餘額開始
func TestNewLoyaltyAccount_StartsActiveWithZeroBalances(t *testing.T) {
	// Arrange
	customerID, _ := loyalty.NewCustomerID("CUST-001")

	// Act
	account, err := loyalty.NewLoyaltyAccount(customerID)

	// Assert
	require.NoError(t, err)
	assert.True(t, account.IsActive())
	assert.Equal(t, 0, account.AvailablePoints().Value())
	assert.Equal(t, 0, account.PendingPoints().Value())
	assert.Equal(t, 0, account.LifetimePoints().Value())
	assert.Nil(t, account.LastActivityAt())
}

// Test 2: 新帳戶緩衝 AccountCreatedEvent
func TestNewLoyaltyAccount_BuffersCreatedEvent(t *testing.T) {
	// Arrange
	customerID, _ := loyalty.NewCustomerID("CUST-001")

	// Act
	account, err := loyalty.NewLoyaltyAccount(customerID)

	// Assert
	require.NoError(t, err)
	events := account.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "loyalty.account_created", events[0].EventType())
	assert.Equal(t, account.ID().String(), events[0].AggregateID())
}

// Test 3: 空客戶 ID 建構失敗
func TestNewLoyaltyAccount_EmptyCustomerID_ReturnsError(t *testing.T) {
	// Act
	_, err := loyalty.NewLoyaltyAccount(loyalty.CustomerID{})

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, loyalty.ErrInvalidCustomerID)
}

// ===== 賺取積分 =====

// Test 4: 賺取積分進入 pending，available 不變
func TestLoyaltyAccount_EarnPoints_GoesToPending(t *testing.T) {
	// Arrange
	account := newTestAccount(t)

	// Act
	transaction, err := account.EarnPoints(points(t, 150), earnContext())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 150, account.PendingPoints().Value())
	assert.Equal(t, 0, account.AvailablePoints().Value())
	assert.Equal(t, 0, account.LifetimePoints().Value())
	assert.NotNil(t, account.LastActivityAt())

	require.NotNil(t, transaction)
	assert.Equal(t, loyalty.TransactionEarn, transaction.Type())
	assert.Equal(t, 150, transaction.Points().Value())
}

// Test 5: 賺取積分緩衝 PointsEarnedEvent（攜帶操作後餘額）
func TestLoyaltyAccount_EarnPoints_BuffersEarnedEvent(t *testing.T) {
	// Arrange
	account := newTestAccount(t)

	// Act
	_, err := account.EarnPoints(points(t, 150), earnContext())

	// Assert
	require.NoError(t, err)
	events := account.Events()
	require.Len(t, events, 1)

	earned, ok := events[0].(*loyalty.PointsEarnedEvent)
	require.True(t, ok)
	assert.Equal(t, "loyalty.points_earned", earned.EventType())
	assert.Equal(t, 0, earned.AvailableAfter().Value())
	assert.Equal(t, 150, earned.PendingAfter().Value())
}

// Test 6: 非啟用帳戶不能賺取
func TestLoyaltyAccount_EarnPoints_SuspendedAccount_ReturnsError(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	account.Suspend()

	// Act
	_, err := account.EarnPoints(points(t, 100), earnContext())

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, loyalty.ErrInactiveAccount)
	assert.Equal(t, 0, account.PendingPoints().Value())
}

// ===== 確認積分 =====

// Test 7: 確認 nil 時確認全部 pending
func TestLoyaltyAccount_ConfirmPendingPoints_NilConfirmsAll(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, 150), earnContext())
	require.NoError(t, err)

	// Act
	err = account.ConfirmPendingPoints(nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 150, account.AvailablePoints().Value())
	assert.Equal(t, 0, account.PendingPoints().Value())
	assert.Equal(t, 150, account.LifetimePoints().Value())
}

// Test 8: 部分確認
func TestLoyaltyAccount_ConfirmPendingPoints_PartialAmount(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, 200), earnContext())
	require.NoError(t, err)

	toConfirm := points(t, 80)

	// Act
	err = account.ConfirmPendingPoints(&toConfirm)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 80, account.AvailablePoints().Value())
	assert.Equal(t, 120, account.PendingPoints().Value())
	assert.Equal(t, 80, account.LifetimePoints().Value())
}

// Test 9: 確認超過 pending 失敗，餘額不變
func TestLoyaltyAccount_ConfirmPendingPoints_ExceedsPending_ReturnsError(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, 100), earnContext())
	require.NoError(t, err)

	toConfirm := points(t, 150)

	// Act
	err = account.ConfirmPendingPoints(&toConfirm)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, loyalty.ErrConfirmExceedsPending)
	assert.Equal(t, 100, account.PendingPoints().Value())
	assert.Equal(t, 0, account.AvailablePoints().Value())
}

// Test 10: 確認是系統動作，不更新 lastActivityAt
func TestLoyaltyAccount_ConfirmPendingPoints_DoesNotTouchLastActivity(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, 100), earnContext())
	require.NoError(t, err)

	activityAfterEarn := account.LastActivityAt()
	require.NotNil(t, activityAfterEarn)

	// Act
	err = account.ConfirmPendingPoints(nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, activityAfterEarn, account.LastActivityAt())
}

// ===== 兌換積分 =====

func accountWithAvailable(t *testing.T, available int) *loyalty.LoyaltyAccount {
	t.Helper()

	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, available), earnContext())
	require.NoError(t, err)
	require.NoError(t, account.ConfirmPendingPoints(nil))
	account.ClearEvents()
	return account
}

// Test 11: 兌換扣除 available
func TestLoyaltyAccount_RedeemPoints_DeductsAvailable(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 500)

	// Act
	transaction, err := account.RedeemPoints(points(t, 200), loyalty.RedemptionContext(nil))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 300, account.AvailablePoints().Value())
	// lifetime 不受兌換影響
	assert.Equal(t, 500, account.LifetimePoints().Value())

	require.NotNil(t, transaction)
	assert.Equal(t, loyalty.TransactionRedeem, transaction.Type())
}

// Test 12: 餘額不足兌換失敗，餘額不變
func TestLoyaltyAccount_RedeemPoints_InsufficientBalance_ReturnsError(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 100)

	// Act
	_, err := account.RedeemPoints(points(t, 200), loyalty.RedemptionContext(nil))

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, loyalty.ErrInsufficientPoints)
	assert.Equal(t, 100, account.AvailablePoints().Value())
	assert.Empty(t, account.Events())
}

// Test 13: pending 積分不可兌換
func TestLoyaltyAccount_RedeemPoints_PendingNotRedeemable(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, 500), earnContext())
	require.NoError(t, err)

	// Act：pending 500，available 0
	_, err = account.RedeemPoints(points(t, 100), loyalty.RedemptionContext(nil))

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, loyalty.ErrInsufficientPoints)
}

// Test 14: 兌換緩衝 PointsRedeemedEvent
func TestLoyaltyAccount_RedeemPoints_BuffersRedeemedEvent(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 500)

	// Act
	_, err := account.RedeemPoints(points(t, 200), loyalty.RedemptionContext(nil))

	// Assert
	require.NoError(t, err)
	events := account.Events()
	require.Len(t, events, 1)

	redeemed, ok := events[0].(*loyalty.PointsRedeemedEvent)
	require.True(t, ok)
	assert.Equal(t, "loyalty.points_redeemed", redeemed.EventType())
	assert.Equal(t, 300, redeemed.AvailableAfter().Value())
}

// Test 15: CanRedeemPoints 查詢
func TestLoyaltyAccount_CanRedeemPoints(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 100)

	// Assert
	assert.True(t, account.CanRedeemPoints(points(t, 100)))
	assert.False(t, account.CanRedeemPoints(points(t, 101)))

	account.Suspend()
	assert.False(t, account.CanRedeemPoints(points(t, 50)))
}

// ===== 調整積分 =====

// Test 16: 信用調整同時累加 available 與 lifetime
func TestLoyaltyAccount_CreditAdjustment_AddsAvailableAndLifetime(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 100)

	// Act
	transaction, err := account.CreditAdjustment(points(t, 50), "customer service goodwill")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 150, account.AvailablePoints().Value())
	assert.Equal(t, 150, account.LifetimePoints().Value())
	assert.Equal(t, loyalty.TransactionAdjustment, transaction.Type())
}

// Test 17: 借記調整超過餘額時封頂為零
func TestLoyaltyAccount_DebitAdjustment_ClampsAtZero(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 100)

	// Act
	transaction, err := account.DebitAdjustment(points(t, 250), "fraud reversal")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, account.AvailablePoints().Value())
	// 交易記錄記載實際扣除的數量
	assert.Equal(t, 100, transaction.Points().Value())
}

// ===== 過期積分 =====

// Test 18: 過期數量封頂為 available
func TestLoyaltyAccount_ExpirePoints_CapsAtAvailable(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 100)

	// Act
	transaction, err := account.ExpirePoints(points(t, 300), "annual expiration")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, account.AvailablePoints().Value())
	require.NotNil(t, transaction)
	assert.Equal(t, 100, transaction.Points().Value())
	assert.Equal(t, loyalty.TransactionExpire, transaction.Type())
}

// Test 19: available 為零時過期不產生交易記錄
func TestLoyaltyAccount_ExpirePoints_ZeroAvailable_ReturnsNilTransaction(t *testing.T) {
	// Arrange
	account := newTestAccount(t)

	// Act
	transaction, err := account.ExpirePoints(points(t, 100), "annual expiration")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, transaction)
}

// ===== 狀態轉換 =====

// Test 20: 暫停保留餘額，啟用後恢復操作
func TestLoyaltyAccount_Suspend_PreservesBalances(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 200)

	// Act
	account.Suspend()

	// Assert
	assert.Equal(t, loyalty.StatusSuspended, account.Status())
	assert.Equal(t, 200, account.AvailablePoints().Value())

	// 重新啟用後可繼續兌換
	account.Activate()
	_, err := account.RedeemPoints(points(t, 100), loyalty.RedemptionContext(nil))
	assert.NoError(t, err)
}

// Test 21: 關閉清零 available 與 pending，lifetime 保留
func TestLoyaltyAccount_Close_ZeroesBalances(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, 300), earnContext())
	require.NoError(t, err)
	confirm := points(t, 200)
	require.NoError(t, account.ConfirmPendingPoints(&confirm))

	// Act
	account.Close()

	// Assert
	assert.Equal(t, loyalty.StatusClosed, account.Status())
	assert.Equal(t, 0, account.AvailablePoints().Value())
	assert.Equal(t, 0, account.PendingPoints().Value())
	assert.Equal(t, 200, account.LifetimePoints().Value())
}

// Test 22: 關閉後重新啟用不恢復已清零的餘額
func TestLoyaltyAccount_Close_ReactivateDoesNotRestoreBalances(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, 600), earnContext())
	require.NoError(t, err)
	confirm := points(t, 500)
	require.NoError(t, account.ConfirmPendingPoints(&confirm))

	// Act
	account.Close()
	account.Activate()

	// Assert：帳戶恢復啟用，但積分損失不可逆轉
	assert.Equal(t, loyalty.StatusActive, account.Status())
	assert.Equal(t, 0, account.AvailablePoints().Value())
	assert.Equal(t, 0, account.PendingPoints().Value())
	assert.Equal(t, 500, account.LifetimePoints().Value())
}

// ===== 重建 =====

// Test 23: 從持久化資料重建帳戶
func TestReconstructLoyaltyAccount_ValidData_RestoresState(t *testing.T) {
	// Arrange
	id := loyalty.NewAccountID()
	customerID, _ := loyalty.NewCustomerID("CUST-002")
	lastActivity := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	// Act
	account, err := loyalty.ReconstructLoyaltyAccount(
		id, customerID,
		points(t, 300), points(t, 50), points(t, 1000),
		loyalty.StatusActive,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		&lastActivity,
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 300, account.AvailablePoints().Value())
	assert.Equal(t, 50, account.PendingPoints().Value())
	assert.Equal(t, 1000, account.LifetimePoints().Value())
	// 重建不產生事件
	assert.Empty(t, account.Events())
}

// ===== 事件緩衝 =====

// Test 24: ClearEvents 清空緩衝
func TestLoyaltyAccount_ClearEvents_EmptiesBuffer(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	_, err := account.EarnPoints(points(t, 100), earnContext())
	require.NoError(t, err)
	require.NotEmpty(t, account.Events())

	// Act
	account.ClearEvents()

	// Assert
	assert.Empty(t, account.Events())
}

// Test 25: 沒有規則適用時賺取零積分仍產生交易記錄
func TestLoyaltyAccount_EarnPoints_ZeroPoints_RecordsTransaction(t *testing.T) {
	// Arrange
	account := newTestAccount(t)
	context := loyalty.EarningContext("books", "purchase", nil)

	// Act
	transaction, err := account.EarnPoints(loyalty.ZeroPoints(), context)

	// Assert：零積分不是錯誤，帳本仍記載這筆賺取
	require.NoError(t, err)
	require.NotNil(t, transaction)
	assert.Equal(t, loyalty.TransactionEarn, transaction.Type())
	assert.Equal(t, 0, transaction.Points().Value())
	assert.Equal(t, 0, account.PendingPoints().Value())

	events := account.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "loyalty.points_earned", events[0].EventType())
}

// Test 26: 兌換零積分在餘額充足時放行
func TestLoyaltyAccount_RedeemPoints_ZeroPoints_Allowed(t *testing.T) {
	// Arrange
	account := accountWithAvailable(t, 100)

	// Act
	transaction, err := account.RedeemPoints(loyalty.ZeroPoints(), loyalty.RedemptionContext(nil))

	// Assert
	require.NoError(t, err)
	require.NotNil(t, transaction)
	assert.Equal(t, 100, account.AvailablePoints().Value())
}

// Test 27: 多次操作按發生順序緩衝事件
func TestLoyaltyAccount_Events_PreserveOrder(t *testing.T) {
	// Arrange
	account := newTestAccount(t)

	// Act
	_, err := account.EarnPoints(points(t, 200), earnContext())
	require.NoError(t, err)
	require.NoError(t, account.ConfirmPendingPoints(nil))
	_, err = account.RedeemPoints(points(t, 50), loyalty.RedemptionContext(nil))
	require.NoError(t, err)

	// Assert
	events := account.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "loyalty.points_earned", events[0].EventType())
	assert.Equal(t, "loyalty.points_redeemed", events[1].EventType())
}
