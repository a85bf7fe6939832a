package loyalty

import (
	"time"
)

// ===========================
// PointsTransaction 記錄
// ===========================

// PointsTransaction 單筆積分異動的不可變記錄
//
// 設計原則：
// 1. 不可變：所有字段 unexported，沒有 setter；MarkAsProcessed 返回新記錄
// 2. 由聚合根的命令方法產生，由 TransactionRepository 持久化
// 3. points 字段為異動幅度（magnitude），方向由 transactionType 表達；
//    調整操作的 credit/debit 方向額外記錄在 context 中
type PointsTransaction struct {
	id              TransactionID
	accountID       AccountID
	transactionType TransactionType
	points          Points
	context         TransactionContext
	createdAt       time.Time
	processedAt     *time.Time
}

// NewPointsTransaction 創建新的積分交易記錄
//
// 自動生成 TransactionID，createdAt 為當前時間，processedAt 為空
func NewPointsTransaction(
	accountID AccountID,
	transactionType TransactionType,
	points Points,
	context TransactionContext,
) *PointsTransaction {
	return &PointsTransaction{
		id:              NewTransactionID(),
		accountID:       accountID,
		transactionType: transactionType,
		points:          points,
		context:         context,
		createdAt:       time.Now(),
	}
}

// ReconstructPointsTransaction 從持久化存儲重建交易記錄
//
// 僅供 Infrastructure Layer 使用；不做業務驗證以外的轉換
// （ID 與類型的有效性已在 mapper 解析階段驗證）
func ReconstructPointsTransaction(
	id TransactionID,
	accountID AccountID,
	transactionType TransactionType,
	points Points,
	context TransactionContext,
	createdAt time.Time,
	processedAt *time.Time,
) *PointsTransaction {
	return &PointsTransaction{
		id:              id,
		accountID:       accountID,
		transactionType: transactionType,
		points:          points,
		context:         context,
		createdAt:       createdAt,
		processedAt:     processedAt,
	}
}

// ID 獲取交易 ID
func (t *PointsTransaction) ID() TransactionID {
	return t.id
}

// AccountID 獲取帳戶 ID
func (t *PointsTransaction) AccountID() AccountID {
	return t.accountID
}

// Type 獲取交易類型
func (t *PointsTransaction) Type() TransactionType {
	return t.transactionType
}

// Points 獲取異動幅度
func (t *PointsTransaction) Points() Points {
	return t.points
}

// Context 獲取交易上下文
func (t *PointsTransaction) Context() TransactionContext {
	return t.context
}

// CreatedAt 獲取創建時間
func (t *PointsTransaction) CreatedAt() time.Time {
	return t.createdAt
}

// ProcessedAt 獲取處理時間（未處理時為 nil）
func (t *PointsTransaction) ProcessedAt() *time.Time {
	return t.processedAt
}

// IsProcessed 判斷是否已處理
func (t *PointsTransaction) IsProcessed() bool {
	return t.processedAt != nil
}

// MarkAsProcessed 標記為已處理（返回新記錄，不修改原記錄）
//
// 冪等性：對已處理的記錄調用返回原記錄本身，processedAt 不變
func (t *PointsTransaction) MarkAsProcessed() *PointsTransaction {
	if t.IsProcessed() {
		return t
	}

	now := time.Now()
	return &PointsTransaction{
		id:              t.id,
		accountID:       t.accountID,
		transactionType: t.transactionType,
		points:          t.points,
		context:         t.context,
		createdAt:       t.createdAt,
		processedAt:     &now,
	}
}

// IsEarning 判斷是否為積分流入交易
func (t *PointsTransaction) IsEarning() bool {
	return t.transactionType.IsEarning()
}

// IsSpending 判斷是否為積分流出交易
func (t *PointsTransaction) IsSpending() bool {
	return t.transactionType.IsSpending()
}
