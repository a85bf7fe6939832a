package loyalty

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	domain "github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// ===========================
// GORM Models
// ===========================

// LoyaltyAccountModel 忠誠度帳戶資料表模型
//
// 設計原則：
// - 僅用於 Infrastructure Layer（不暴露給 Domain Layer）
// - 與 Domain LoyaltyAccount 聚合分離（Mapper 轉換）
//
// 資料庫約束：
// - id: 主鍵（UUID）
// - customer_id: 唯一索引（一個客戶只能有一個帳戶）
// - 三個積分欄位均有非負 CHECK 約束
type LoyaltyAccountModel struct {
	ID              string     `gorm:"column:id;type:varchar(36);primaryKey"`
	CustomerID      string     `gorm:"column:customer_id;type:varchar(64);uniqueIndex;not null"`
	AvailablePoints int        `gorm:"column:available_points;not null;default:0;check:available_points >= 0"`
	PendingPoints   int        `gorm:"column:pending_points;not null;default:0;check:pending_points >= 0"`
	LifetimePoints  int        `gorm:"column:lifetime_points;not null;default:0;check:lifetime_points >= 0"`
	Status          string     `gorm:"column:status;type:varchar(16);not null"`
	LastActivityAt  *time.Time `gorm:"column:last_activity_at"`

	CreatedAt time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName 指定資料表名稱
func (LoyaltyAccountModel) TableName() string {
	return "loyalty_accounts"
}

// PointsTransactionModel 積分交易記錄資料表模型
//
// context 欄位以 JSON 保存交易上下文（資料與時間戳）。
type PointsTransactionModel struct {
	ID          string     `gorm:"column:id;type:varchar(36);primaryKey"`
	AccountID   string     `gorm:"column:account_id;type:varchar(36);index;not null"`
	Type        string     `gorm:"column:type;type:varchar(16);index;not null"`
	Points      int        `gorm:"column:points;not null;check:points >= 0"`
	Context     string     `gorm:"column:context;type:text;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;index"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`
}

// TableName 指定資料表名稱
func (PointsTransactionModel) TableName() string {
	return "points_transactions"
}

// AuditRecordModel 審計記錄資料表模型
type AuditRecordModel struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey"`
	EntityType string    `gorm:"column:entity_type;type:varchar(32);index:idx_audit_entity;not null"`
	EntityID   string    `gorm:"column:entity_id;type:varchar(36);index:idx_audit_entity;not null"`
	Action     string    `gorm:"column:action;type:varchar(32);index;not null"`
	Details    string    `gorm:"column:details;type:text;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;index"`
}

// TableName 指定資料表名稱
func (AuditRecordModel) TableName() string {
	return "audit_records"
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 聚合
func (m *LoyaltyAccountModel) toDomain() (*domain.LoyaltyAccount, error) {
	accountID, err := domain.AccountIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := domain.NewCustomerID(m.CustomerID)
	if err != nil {
		return nil, err
	}

	available, err := domain.NewPoints(m.AvailablePoints)
	if err != nil {
		return nil, err
	}
	pending, err := domain.NewPoints(m.PendingPoints)
	if err != nil {
		return nil, err
	}
	lifetime, err := domain.NewPoints(m.LifetimePoints)
	if err != nil {
		return nil, err
	}

	status, err := domain.ParseAccountStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructLoyaltyAccount(
		accountID,
		customerID,
		available,
		pending,
		lifetime,
		status,
		m.CreatedAt,
		m.LastActivityAt,
	)
}

// toAccountModel 將 Domain 聚合轉換為 GORM 模型
func toAccountModel(account *domain.LoyaltyAccount) *LoyaltyAccountModel {
	return &LoyaltyAccountModel{
		ID:              account.ID().String(),
		CustomerID:      account.CustomerID().String(),
		AvailablePoints: account.AvailablePoints().Value(),
		PendingPoints:   account.PendingPoints().Value(),
		LifetimePoints:  account.LifetimePoints().Value(),
		Status:          account.Status().String(),
		LastActivityAt:  account.LastActivityAt(),
		CreatedAt:       account.CreatedAt(),
	}
}

// contextEnvelope 交易上下文的 JSON 序列化格式
type contextEnvelope struct {
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// toDomain 將 GORM 模型轉換為 Domain 交易記錄
func (m *PointsTransactionModel) toDomain() (*domain.PointsTransaction, error) {
	transactionID, err := domain.TransactionIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	accountID, err := domain.AccountIDFromString(m.AccountID)
	if err != nil {
		return nil, err
	}

	transactionType, err := domain.ParseTransactionType(m.Type)
	if err != nil {
		return nil, err
	}

	points, err := domain.NewPoints(m.Points)
	if err != nil {
		return nil, err
	}

	var envelope contextEnvelope
	if err := json.Unmarshal([]byte(m.Context), &envelope); err != nil {
		return nil, err
	}
	context := domain.NewTransactionContext(envelope.Data).WithTimestamp(envelope.Timestamp)

	return domain.ReconstructPointsTransaction(
		transactionID,
		accountID,
		transactionType,
		points,
		context,
		m.CreatedAt,
		m.ProcessedAt,
	), nil
}

// toTransactionModel 將 Domain 交易記錄轉換為 GORM 模型
func toTransactionModel(transaction *domain.PointsTransaction) (*PointsTransactionModel, error) {
	envelope := contextEnvelope{
		Data:      transaction.Context().ToMap(),
		Timestamp: transaction.Context().Timestamp(),
	}
	contextJSON, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	return &PointsTransactionModel{
		ID:          transaction.ID().String(),
		AccountID:   transaction.AccountID().String(),
		Type:        transaction.Type().String(),
		Points:      transaction.Points().Value(),
		Context:     string(contextJSON),
		CreatedAt:   transaction.CreatedAt(),
		ProcessedAt: transaction.ProcessedAt(),
	}, nil
}

// toDomain 將 GORM 模型轉換為 Domain 審計記錄
func (m *AuditRecordModel) toDomain() (*domain.AuditRecord, error) {
	var details map[string]interface{}
	if err := json.Unmarshal([]byte(m.Details), &details); err != nil {
		return nil, err
	}

	return domain.ReconstructAuditRecord(
		m.ID,
		m.EntityType,
		m.EntityID,
		m.Action,
		details,
		m.RecordedAt,
	), nil
}

// toAuditModel 將 Domain 審計記錄轉換為 GORM 模型
func toAuditModel(record *domain.AuditRecord) (*AuditRecordModel, error) {
	detailsJSON, err := json.Marshal(record.Details())
	if err != nil {
		return nil, err
	}

	return &AuditRecordModel{
		ID:         record.ID(),
		EntityType: record.EntityType(),
		EntityID:   record.EntityID(),
		Action:     record.Action(),
		Details:    string(detailsJSON),
		RecordedAt: record.RecordedAt(),
	}, nil
}
