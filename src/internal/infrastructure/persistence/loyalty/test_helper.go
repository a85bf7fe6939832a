package loyalty

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// ===========================
// 測試輔助函數
// ===========================

// setupTestDB 創建測試用的 SQLite in-memory 資料庫
//
// 設計原則：
// 1. 隔離性：每個測試使用獨立的 in-memory DB
// 2. 速度：SQLite in-memory 快速，適合測試
// 3. 真實性：使用真實 SQL 引擎，而非 Mock
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // 測試時靜音
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&LoyaltyAccountModel{},
		&PointsTransactionModel{},
		&AuditRecordModel{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cleanup := func() {
		// SQLite in-memory 資料庫會在連接關閉時自動清理
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}

	return db, cleanup
}

// createTestAccount 創建並保存測試用的 Domain 帳戶
func createTestAccount(t *testing.T, repo domain.AccountRepository, customerID string) *domain.LoyaltyAccount {
	t.Helper()

	cid, err := domain.NewCustomerID(customerID)
	if err != nil {
		t.Fatalf("Failed to create customer ID: %v", err)
	}

	account, err := domain.NewLoyaltyAccount(cid)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	account.ClearEvents()

	if err := repo.Save(nil, account); err != nil {
		t.Fatalf("Failed to save account: %v", err)
	}

	return account
}

// mustPoints 創建 Points，失敗時讓測試直接失敗
func mustPoints(t *testing.T, value int) domain.Points {
	t.Helper()

	points, err := domain.NewPoints(value)
	if err != nil {
		t.Fatalf("Failed to create points: %v", err)
	}
	return points
}

// earningContextAt 創建指定時間戳的賺取上下文
func earningContextAt(category, source string, at time.Time) domain.TransactionContext {
	return domain.EarningContext(category, source, nil).WithTimestamp(at)
}
