package loyalty

import (
	"time"
)

// ===========================
// TransactionContext 值對象
// ===========================

// 保留鍵常量
const (
	// ContextKeyAmount 複合規則在評估賺取規則前注入的交易金額（Money）
	// 規則可透過此鍵檢視本次交易的金額（如最低消費規則）
	ContextKeyAmount = "amount"

	// ContextKeyCategory 消費類別
	ContextKeyCategory = "category"

	// ContextKeySource 積分來源（purchase、promotion 等）
	ContextKeySource = "source"

	// ContextKeyTier 客戶等級
	ContextKeyTier = "tier"

	// ContextKeyType 上下文類型（earning、redemption、adjustment、expiration）
	ContextKeyType = "type"

	// ContextKeyReason 調整原因
	ContextKeyReason = "reason"
)

// TransactionContext 交易上下文值對象
//
// 設計原則：
// 1. 不可變：With/Merge 返回攜帶副本的新上下文，原上下文不受影響
// 2. 鍵值順序無關緊要（內部為 map）
// 3. 時間戳在建構時固定，With/Merge 保留原時間戳
//
// 用途：攜帶規則評估輸入（類別、等級、來源、金額、近期活動計數），
// 每次操作建立新的上下文
//
// 注意：此類型與 shared.TransactionContext（資料庫事務標記介面）無關
type TransactionContext struct {
	data      map[string]interface{}
	timestamp time.Time
}

// NewTransactionContext 從鍵值映射建構上下文（時間戳為當前時間）
func NewTransactionContext(data map[string]interface{}) TransactionContext {
	return TransactionContext{
		data:      copyData(data),
		timestamp: time.Now(),
	}
}

// EarningContext 建構賺取場景的上下文
//
// category 和 source 為空字串時省略對應鍵
func EarningContext(category string, source string, extra map[string]interface{}) TransactionContext {
	data := make(map[string]interface{}, len(extra)+2)

	if category != "" {
		data[ContextKeyCategory] = category
	}
	if source != "" {
		data[ContextKeySource] = source
	}
	for k, v := range extra {
		data[k] = v
	}

	return TransactionContext{data: data, timestamp: time.Now()}
}

// RedemptionContext 建構兌換場景的上下文
func RedemptionContext(extra map[string]interface{}) TransactionContext {
	data := make(map[string]interface{}, len(extra)+1)
	data[ContextKeyType] = "redemption"
	for k, v := range extra {
		data[k] = v
	}

	return TransactionContext{data: data, timestamp: time.Now()}
}

// Get 獲取指定鍵的值（不存在時返回 nil, false）
func (c TransactionContext) Get(key string) (interface{}, bool) {
	v, ok := c.data[key]
	return v, ok
}

// GetOrDefault 獲取指定鍵的值（不存在時返回默認值）
func (c TransactionContext) GetOrDefault(key string, fallback interface{}) interface{} {
	if v, ok := c.data[key]; ok {
		return v
	}
	return fallback
}

// Has 判斷是否包含指定鍵
func (c TransactionContext) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Category 獲取消費類別（不存在時返回空字串）
func (c TransactionContext) Category() string {
	if v, ok := c.data[ContextKeyCategory].(string); ok {
		return v
	}
	return ""
}

// Source 獲取積分來源（不存在時返回空字串）
func (c TransactionContext) Source() string {
	if v, ok := c.data[ContextKeySource].(string); ok {
		return v
	}
	return ""
}

// Timestamp 獲取上下文建構時間
func (c TransactionContext) Timestamp() time.Time {
	return c.timestamp
}

// With 添加或覆蓋一個鍵（返回新上下文，保留原時間戳）
func (c TransactionContext) With(key string, value interface{}) TransactionContext {
	data := make(map[string]interface{}, len(c.data)+1)
	for k, v := range c.data {
		data[k] = v
	}
	data[key] = value

	return TransactionContext{data: data, timestamp: c.timestamp}
}

// Merge 合併多個鍵（返回新上下文，保留原時間戳）
// 傳入的鍵覆蓋同名既有鍵
func (c TransactionContext) Merge(data map[string]interface{}) TransactionContext {
	merged := make(map[string]interface{}, len(c.data)+len(data))
	for k, v := range c.data {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}

	return TransactionContext{data: merged, timestamp: c.timestamp}
}

// WithTimestamp 替換時間戳（返回新上下文）
//
// 使用場景：
// - 時間窗規則的確定性測試
// - 重放歷史交易時保留原始時間
func (c TransactionContext) WithTimestamp(timestamp time.Time) TransactionContext {
	return TransactionContext{data: copyData(c.data), timestamp: timestamp}
}

// ToMap 導出鍵值映射副本（審計 payload / 序列化用）
func (c TransactionContext) ToMap() map[string]interface{} {
	return copyData(c.data)
}

// copyData 複製鍵值映射（nil 安全）
func copyData(data map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return copied
}
