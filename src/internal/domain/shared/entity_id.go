package shared

import (
	"github.com/google/uuid"
)

// ===========================
// EntityID[T] 泛型實體 ID
// ===========================

// EntityID 是一個泛型實體 ID 值對象
//
// 設計原則：
// 1. 類型安全：不同實體的 ID 不能混用（AccountID ≠ TransactionID）
// 2. 不可變性（unexported field）
// 3. 自我驗證（建構函數檢查）
//
// 泛型參數 T 是標記類型（marker type），只用於編譯時類型區分，
// 不需要有任何方法或字段。
//
// 使用範例（loyalty 包）：
//
//	type AccountMarker struct{}
//	type AccountID = shared.EntityID[AccountMarker]
//
//	id := shared.NewEntityID[AccountMarker]()
//	parsed, _ := shared.EntityIDFromString[AccountMarker](s, ErrInvalidAccountID)
type EntityID[T any] struct {
	value uuid.UUID
}

// NewEntityID 生成新的實體 ID（使用 UUID v4）
func NewEntityID[T any]() EntityID[T] {
	return EntityID[T]{value: uuid.New()}
}

// EntityIDFromString 從字串解析實體 ID
//
// errTemplate 是解析失敗時返回的錯誤，由調用者提供：
// 各 bounded context 定義自己的 ID 錯誤（ErrInvalidAccountID、
// ErrInvalidTransactionID），shared 層不依賴具體業務錯誤。
func EntityIDFromString[T any](s string, errTemplate error) (EntityID[T], error) {
	id, err := uuid.Parse(s)
	if err != nil {
		// DomainError 類型的模板補上解析上下文
		if domainErr, ok := errTemplate.(interface {
			WithContext(keyValues ...interface{}) error
		}); ok {
			return EntityID[T]{}, domainErr.WithContext(
				"input", s,
				"parse_error", err.Error(),
			)
		}
		return EntityID[T]{}, errTemplate
	}
	return EntityID[T]{value: id}, nil
}

// String 轉換為字串表示（小寫 UUID）
func (e EntityID[T]) String() string {
	return e.value.String()
}

// Equals 比較兩個 EntityID 是否相等（僅限相同標記類型）
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty 判斷是否為空 ID（零值或解析失敗的返回值）
func (e EntityID[T]) IsEmpty() bool {
	return e.value == uuid.Nil
}
