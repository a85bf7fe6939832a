package loyalty

import (
	"gorm.io/gorm"

	domain "github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// AuditRepositoryImpl
// ===========================

// AuditRepositoryImpl 審計記錄倉儲實現（GORM）
type AuditRepositoryImpl struct {
	db *gorm.DB
}

// NewAuditRepository 創建審計記錄倉儲實例
func NewAuditRepository(db *gorm.DB) domain.AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

// Store 保存審計記錄
func (r *AuditRepositoryImpl) Store(ctx shared.TransactionContext, record *domain.AuditRecord) error {
	db := r.getDB(ctx)

	model, err := toAuditModel(record)
	if err != nil {
		return err
	}

	return db.Create(model).Error
}

// FindByEntity 查找指定實體的審計記錄（按記錄時間降序，limit <= 0 時返回全部）
func (r *AuditRepositoryImpl) FindByEntity(ctx shared.TransactionContext, entityType, entityID string, limit int) ([]*domain.AuditRecord, error) {
	db := r.getDB(ctx)

	var models []AuditRecordModel

	query := db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	return toDomainAuditRecords(models)
}

// FindByAction 查找指定操作的審計記錄（按記錄時間降序，limit <= 0 時返回全部）
func (r *AuditRepositoryImpl) FindByAction(ctx shared.TransactionContext, action string, limit int) ([]*domain.AuditRecord, error) {
	db := r.getDB(ctx)

	var models []AuditRecordModel

	query := db.Where("action = ?", action).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	return toDomainAuditRecords(models)
}

func (r *AuditRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if gormCtx, ok := ctx.(gormTransactionContext); ok {
		return gormCtx.GetDB()
	}
	return r.db
}

func toDomainAuditRecords(models []AuditRecordModel) ([]*domain.AuditRecord, error) {
	records := make([]*domain.AuditRecord, 0, len(models))
	for i := range models {
		record, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
