package loyalty

import (
	"strings"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// 實體 ID 類型定義
// ===========================

// 設計原則：使用泛型 shared.EntityID[T] 消除重複代碼
//
// 類型安全保證：
// - AccountID 和 TransactionID 是不同類型（編譯器強制檢查）
// - 不能將 AccountID 賦值給 TransactionID 變量
// - 不能比較 AccountID 和 TransactionID（編譯錯誤）

// AccountMarker 是 AccountID 的標記類型
type AccountMarker struct{}

// AccountID 忠誠帳戶的唯一標識符（UUID v4）
type AccountID = shared.EntityID[AccountMarker]

// NewAccountID 生成新的帳戶 ID
func NewAccountID() AccountID {
	return shared.NewEntityID[AccountMarker]()
}

// AccountIDFromString 從字串解析帳戶 ID
//
// 使用場景：
// - 從數據庫讀取 ID
// - API 請求解析 ID
func AccountIDFromString(s string) (AccountID, error) {
	return shared.EntityIDFromString[AccountMarker](s, ErrInvalidAccountID)
}

// TransactionMarker 是 TransactionID 的標記類型
type TransactionMarker struct{}

// TransactionID 積分交易記錄的唯一標識符（UUID v4）
type TransactionID = shared.EntityID[TransactionMarker]

// NewTransactionID 生成新的交易 ID
func NewTransactionID() TransactionID {
	return shared.NewEntityID[TransactionMarker]()
}

// TransactionIDFromString 從字串解析交易 ID
func TransactionIDFromString(s string) (TransactionID, error) {
	return shared.EntityIDFromString[TransactionMarker](s, ErrInvalidTransactionID)
}

// ===========================
// CustomerID 值對象
// ===========================

// CustomerID 客戶識別符值對象
//
// 設計說明：
// CustomerID 來自外部系統（CRM、會員系統），格式不受本系統控制，
// 因此不使用 UUID 封裝，只保證非空並修剪前後空白。
// 帳戶與客戶為 1:1 關係（由儲存層唯一索引保證）
type CustomerID struct {
	value string
}

// NewCustomerID 建構函數（checked 版本）
//
// 建構約束：修剪空白後不能為空字串
func NewCustomerID(value string) (CustomerID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return CustomerID{}, ErrInvalidCustomerID.WithContext(
			"reason", "customer ID cannot be empty",
		)
	}
	return CustomerID{value: trimmed}, nil
}

// String 獲取客戶 ID 字串
func (c CustomerID) String() string {
	return c.value
}

// Equals 比較兩個 CustomerID 是否相等
func (c CustomerID) Equals(other CustomerID) bool {
	return c.value == other.value
}

// IsEmpty 判斷是否為空（零值）
func (c CustomerID) IsEmpty() bool {
	return c.value == ""
}
