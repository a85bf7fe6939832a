package loyalty

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// gormTransactionContext GORM 事務上下文（來自 persistence package）
type gormTransactionContext interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ===========================
// AccountRepositoryImpl
// ===========================

// AccountRepositoryImpl 忠誠度帳戶倉儲實現（GORM）
//
// 設計原則：
// - 實作 domain.AccountRepository 接口
// - 處理 Domain 與 GORM 模型轉換
// - 將 GORM 錯誤轉換為 Domain 錯誤
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// NewAccountRepository 創建帳戶倉儲實例
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Save 保存新帳戶
//
// 錯誤處理：
// - customer_id 唯一約束違反 → domain.ErrAccountAlreadyExists
// - 其他資料庫錯誤 → 原始錯誤
func (r *AccountRepositoryImpl) Save(ctx shared.TransactionContext, account *domain.LoyaltyAccount) error {
	db := r.getDB(ctx)

	model := toAccountModel(account)

	result := db.Create(model)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return domain.ErrAccountAlreadyExists.WithContext(
				"customer_id", account.CustomerID().String(),
			)
		}
		return result.Error
	}

	return nil
}

// Update 更新既有帳戶
//
// 錯誤處理：
// - 帳戶不存在（沒有資料列被更新）→ domain.ErrAccountNotFound
func (r *AccountRepositoryImpl) Update(ctx shared.TransactionContext, account *domain.LoyaltyAccount) error {
	db := r.getDB(ctx)

	model := toAccountModel(account)

	result := db.Model(&LoyaltyAccountModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"available_points": model.AvailablePoints,
			"pending_points":   model.PendingPoints,
			"lifetime_points":  model.LifetimePoints,
			"status":           model.Status,
			"last_activity_at": model.LastActivityAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound.WithContext(
			"account_id", model.ID,
		)
	}

	return nil
}

// FindByID 根據帳戶 ID 查找帳戶
func (r *AccountRepositoryImpl) FindByID(ctx shared.TransactionContext, id domain.AccountID) (*domain.LoyaltyAccount, error) {
	db := r.getDB(ctx)

	var model LoyaltyAccountModel

	result := db.Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound.WithContext(
				"account_id", id.String(),
			)
		}
		return nil, result.Error
	}

	return model.toDomain()
}

// FindByCustomerID 根據客戶 ID 查找帳戶
func (r *AccountRepositoryImpl) FindByCustomerID(ctx shared.TransactionContext, customerID domain.CustomerID) (*domain.LoyaltyAccount, error) {
	db := r.getDB(ctx)

	var model LoyaltyAccountModel

	result := db.Where("customer_id = ?", customerID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound.WithContext(
				"customer_id", customerID.String(),
			)
		}
		return nil, result.Error
	}

	return model.toDomain()
}

// ExistsByCustomerID 檢查客戶是否已有帳戶
func (r *AccountRepositoryImpl) ExistsByCustomerID(ctx shared.TransactionContext, customerID domain.CustomerID) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	result := db.Model(&LoyaltyAccountModel{}).
		Where("customer_id = ?", customerID.String()).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// FindWithPendingPoints 查找所有有待確認積分的帳戶
func (r *AccountRepositoryImpl) FindWithPendingPoints(ctx shared.TransactionContext) ([]*domain.LoyaltyAccount, error) {
	db := r.getDB(ctx)

	var models []LoyaltyAccountModel

	result := db.Where("pending_points > 0").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*domain.LoyaltyAccount, 0, len(models))
	for i := range models {
		account, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// CountActive 計算啟用狀態的帳戶數量
func (r *AccountRepositoryImpl) CountActive(ctx shared.TransactionContext) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	result := db.Model(&LoyaltyAccountModel{}).
		Where("status = ?", domain.StatusActive.String()).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Delete 刪除帳戶（軟刪除）
func (r *AccountRepositoryImpl) Delete(ctx shared.TransactionContext, id domain.AccountID) error {
	db := r.getDB(ctx)

	result := db.Where("id = ?", id.String()).Delete(&LoyaltyAccountModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound.WithContext(
			"account_id", id.String(),
		)
	}

	return nil
}

// getDB 從事務上下文獲取 DB 實例
//
// 可選事務參與模式：
// - 寫操作：必須在事務中（ctx != nil）
// - 讀操作：ctx 為 nil 時使用預設連接（auto-commit）
func (r *AccountRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if gormCtx, ok := ctx.(gormTransactionContext); ok {
		return gormCtx.GetDB()
	}
	return r.db
}

// ===========================
// Helper Functions
// ===========================

// isUniqueConstraintError 檢查是否為唯一約束錯誤
//
// 支援的資料庫：
// - SQLite: "UNIQUE constraint failed"
// - PostgreSQL: "duplicate key value" / "violates unique constraint"
// - MySQL: "Duplicate entry"
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "UNIQUE constraint failed") ||
		strings.Contains(errMsg, "duplicate key value") ||
		strings.Contains(errMsg, "Duplicate entry") ||
		strings.Contains(errMsg, "violates unique constraint")
}
