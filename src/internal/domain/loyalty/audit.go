package loyalty

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// 審計記錄
// ===========================

// AuditRecord 審計記錄
//
// 記載一次對帳戶的敏感操作（賺取、兌換、調整、風控攔截）。
// 記錄建構後不可變。
type AuditRecord struct {
	id         string
	entityType string
	entityID   string
	action     string
	details    map[string]interface{}
	recordedAt time.Time
}

// NewAuditRecord 創建審計記錄
func NewAuditRecord(entityType, entityID, action string, details map[string]interface{}) *AuditRecord {
	copied := make(map[string]interface{}, len(details))
	for k, v := range details {
		copied[k] = v
	}

	return &AuditRecord{
		id:         uuid.New().String(),
		entityType: entityType,
		entityID:   entityID,
		action:     action,
		details:    copied,
		recordedAt: time.Now(),
	}
}

// ReconstructAuditRecord 從持久化資料重建審計記錄（僅供 Infrastructure Layer 使用）
func ReconstructAuditRecord(
	id string,
	entityType string,
	entityID string,
	action string,
	details map[string]interface{},
	recordedAt time.Time,
) *AuditRecord {
	return &AuditRecord{
		id:         id,
		entityType: entityType,
		entityID:   entityID,
		action:     action,
		details:    details,
		recordedAt: recordedAt,
	}
}

// ID 獲取記錄 ID
func (r *AuditRecord) ID() string {
	return r.id
}

// EntityType 獲取實體類型
func (r *AuditRecord) EntityType() string {
	return r.entityType
}

// EntityID 獲取實體 ID
func (r *AuditRecord) EntityID() string {
	return r.entityID
}

// Action 獲取操作名稱
func (r *AuditRecord) Action() string {
	return r.action
}

// Details 獲取操作細節的副本
func (r *AuditRecord) Details() map[string]interface{} {
	copied := make(map[string]interface{}, len(r.details))
	for k, v := range r.details {
		copied[k] = v
	}
	return copied
}

// RecordedAt 獲取記錄時間
func (r *AuditRecord) RecordedAt() time.Time {
	return r.recordedAt
}

// AuditRepository 審計記錄儲存庫介面
type AuditRepository interface {
	// Store 儲存審計記錄
	Store(ctx shared.TransactionContext, record *AuditRecord) error

	// FindByEntity 查詢指定實體的審計記錄（按記錄時間降序）
	// limit <= 0 時返回全部
	FindByEntity(ctx shared.TransactionContext, entityType, entityID string, limit int) ([]*AuditRecord, error)

	// FindByAction 查詢指定操作的審計記錄（按記錄時間降序）
	// limit <= 0 時返回全部
	FindByAction(ctx shared.TransactionContext, action string, limit int) ([]*AuditRecord, error)
}
