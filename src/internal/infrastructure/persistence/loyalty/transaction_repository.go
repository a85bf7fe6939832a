package loyalty

import (
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// TransactionRepositoryImpl
// ===========================

// TransactionRepositoryImpl 積分交易記錄倉儲實現（GORM）
type TransactionRepositoryImpl struct {
	db *gorm.DB
}

// NewTransactionRepository 創建交易記錄倉儲實例
func NewTransactionRepository(db *gorm.DB) domain.TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

// Save 保存交易記錄
func (r *TransactionRepositoryImpl) Save(ctx shared.TransactionContext, transaction *domain.PointsTransaction) error {
	db := r.getDB(ctx)

	model, err := toTransactionModel(transaction)
	if err != nil {
		return err
	}

	return db.Create(model).Error
}

// FindByID 根據交易 ID 查找交易記錄
func (r *TransactionRepositoryImpl) FindByID(ctx shared.TransactionContext, id domain.TransactionID) (*domain.PointsTransaction, error) {
	db := r.getDB(ctx)

	var model PointsTransactionModel

	result := db.Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound.WithContext(
				"transaction_id", id.String(),
			)
		}
		return nil, result.Error
	}

	return model.toDomain()
}

// FindByAccountID 查找帳戶的交易記錄（按創建時間降序，limit <= 0 時返回全部）
func (r *TransactionRepositoryImpl) FindByAccountID(ctx shared.TransactionContext, accountID domain.AccountID, limit int) ([]*domain.PointsTransaction, error) {
	db := r.getDB(ctx)

	var models []PointsTransactionModel

	query := db.Where("account_id = ?", accountID.String()).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	return toDomainTransactions(models)
}

// FindByType 查找帳戶指定類型的交易記錄（按創建時間降序，limit <= 0 時返回全部）
func (r *TransactionRepositoryImpl) FindByType(ctx shared.TransactionContext, accountID domain.AccountID, transactionType domain.TransactionType, limit int) ([]*domain.PointsTransaction, error) {
	db := r.getDB(ctx)

	var models []PointsTransactionModel

	query := db.Where("account_id = ? AND type = ?", accountID.String(), transactionType.String()).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	return toDomainTransactions(models)
}

// FindUnprocessed 查找所有未處理的交易記錄
func (r *TransactionRepositoryImpl) FindUnprocessed(ctx shared.TransactionContext) ([]*domain.PointsTransaction, error) {
	db := r.getDB(ctx)

	var models []PointsTransactionModel

	result := db.Where("processed_at IS NULL").
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return toDomainTransactions(models)
}

// MarkProcessed 將交易記錄標記為已處理（已處理的記錄保持原時間不變）
func (r *TransactionRepositoryImpl) MarkProcessed(ctx shared.TransactionContext, id domain.TransactionID) error {
	db := r.getDB(ctx)

	now := time.Now()
	result := db.Model(&PointsTransactionModel{}).
		Where("id = ? AND processed_at IS NULL", id.String()).
		Update("processed_at", &now)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// 區分「不存在」與「已處理」
		var count int64
		if err := db.Model(&PointsTransactionModel{}).
			Where("id = ?", id.String()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrTransactionNotFound.WithContext(
				"transaction_id", id.String(),
			)
		}
	}

	return nil
}

// TotalPointsByType 統計帳戶指定類型交易的積分總和
func (r *TransactionRepositoryImpl) TotalPointsByType(ctx shared.TransactionContext, accountID domain.AccountID, transactionType domain.TransactionType) (domain.Points, error) {
	db := r.getDB(ctx)

	var total int64
	result := db.Model(&PointsTransactionModel{}).
		Where("account_id = ? AND type = ?", accountID.String(), transactionType.String()).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total)
	if result.Error != nil {
		return domain.ZeroPoints(), result.Error
	}

	return domain.NewPoints(int(total))
}

func (r *TransactionRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if gormCtx, ok := ctx.(gormTransactionContext); ok {
		return gormCtx.GetDB()
	}
	return r.db
}

func toDomainTransactions(models []PointsTransactionModel) ([]*domain.PointsTransaction, error) {
	transactions := make([]*domain.PointsTransaction, 0, len(models))
	for i := range models {
		transaction, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}
