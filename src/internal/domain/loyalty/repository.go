package loyalty

import "github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"

// ===========================
// Repository 介面定義
// ===========================
//
// 設計原則：
// - 介面由 Domain Layer 定義，Infrastructure Layer 實現
// - 所有方法接受可選的 TransactionContext 以支援交易邊界
// - 錯誤以領域錯誤表達，不洩漏持久化細節

// Repository 層錯誤
var (
	// ErrAccountNotFound 帳戶不存在
	ErrAccountNotFound = NewDomainError(ErrCodeAccountNotFound, "帳戶不存在")

	// ErrAccountAlreadyExists 客戶已有帳戶
	ErrAccountAlreadyExists = NewDomainError(ErrCodeAccountAlreadyExists, "客戶已擁有忠誠度帳戶")

	// ErrTransactionNotFound 交易記錄不存在
	ErrTransactionNotFound = NewDomainError(ErrCodeTransactionNotFound, "交易記錄不存在")
)

// AccountRepository 忠誠度帳戶儲存庫介面
type AccountRepository interface {
	// Save 儲存新帳戶，客戶已有帳戶時返回 ErrAccountAlreadyExists
	Save(ctx shared.TransactionContext, account *LoyaltyAccount) error

	// Update 更新既有帳戶，帳戶不存在時返回 ErrAccountNotFound
	Update(ctx shared.TransactionContext, account *LoyaltyAccount) error

	// FindByID 根據帳戶 ID 查詢，不存在時返回 ErrAccountNotFound
	FindByID(ctx shared.TransactionContext, id AccountID) (*LoyaltyAccount, error)

	// FindByCustomerID 根據客戶 ID 查詢，不存在時返回 ErrAccountNotFound
	FindByCustomerID(ctx shared.TransactionContext, customerID CustomerID) (*LoyaltyAccount, error)

	// ExistsByCustomerID 檢查客戶是否已有帳戶
	ExistsByCustomerID(ctx shared.TransactionContext, customerID CustomerID) (bool, error)

	// FindWithPendingPoints 查詢所有有待確認積分的帳戶
	FindWithPendingPoints(ctx shared.TransactionContext) ([]*LoyaltyAccount, error)

	// CountActive 計算啟用狀態的帳戶數量
	CountActive(ctx shared.TransactionContext) (int64, error)

	// Delete 刪除帳戶（軟刪除），不存在時返回 ErrAccountNotFound
	Delete(ctx shared.TransactionContext, id AccountID) error
}

// TransactionRepository 積分交易記錄儲存庫介面
type TransactionRepository interface {
	// Save 儲存交易記錄
	Save(ctx shared.TransactionContext, transaction *PointsTransaction) error

	// FindByID 根據交易 ID 查詢，不存在時返回 ErrTransactionNotFound
	FindByID(ctx shared.TransactionContext, id TransactionID) (*PointsTransaction, error)

	// FindByAccountID 查詢帳戶的交易記錄（按創建時間降序）
	// limit <= 0 時返回全部
	FindByAccountID(ctx shared.TransactionContext, accountID AccountID, limit int) ([]*PointsTransaction, error)

	// FindByType 查詢帳戶指定類型的交易記錄（按創建時間降序）
	// limit <= 0 時返回全部
	FindByType(ctx shared.TransactionContext, accountID AccountID, transactionType TransactionType, limit int) ([]*PointsTransaction, error)

	// FindUnprocessed 查詢所有未處理的交易記錄
	FindUnprocessed(ctx shared.TransactionContext) ([]*PointsTransaction, error)

	// MarkProcessed 將交易記錄標記為已處理
	MarkProcessed(ctx shared.TransactionContext, id TransactionID) error

	// TotalPointsByType 統計帳戶指定類型交易的積分總和
	TotalPointsByType(ctx shared.TransactionContext, accountID AccountID, transactionType TransactionType) (Points, error)
}
