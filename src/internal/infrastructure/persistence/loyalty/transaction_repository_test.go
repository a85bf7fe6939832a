package loyalty

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// ===========================
// TransactionRepository 整合測試
// ===========================

// saveTransaction 創建並保存一筆交易記錄
func saveTransaction(
	t *testing.T,
	repo domain.TransactionRepository,
	accountID domain.AccountID,
	transactionType domain.TransactionType,
	points int,
	context domain.TransactionContext,
) *domain.PointsTransaction {
	t.Helper()

	transaction := domain.NewPointsTransaction(accountID, transactionType, mustPoints(t, points), context)
	require.NoError(t, repo.Save(nil, transaction))
	return transaction
}

// Test 1: 保存後查回，包含交易上下文的 JSON 往返
func TestTransactionRepository_SaveAndFindByID(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	accountRepo := NewAccountRepository(db)
	repo := NewTransactionRepository(db)
	account := createTestAccount(t, accountRepo, "CUST-001")

	at := time.Date(2025, 6, 7, 14, 30, 0, 0, time.UTC)
	context := earningContextAt("electronics", "purchase", at)
	saved := saveTransaction(t, repo, account.ID(), domain.TransactionEarn, 500, context)

	// Act
	found, err := repo.FindByID(nil, saved.ID())

	// Assert
	require.NoError(t, err)
	assert.True(t, found.ID().Equals(saved.ID()))
	assert.Equal(t, domain.TransactionEarn, found.Type())
	assert.Equal(t, 500, found.Points().Value())
	assert.False(t, found.IsProcessed())

	// 上下文欄位與時間戳完整還原
	category, ok := found.Context().Get(domain.ContextKeyCategory)
	require.True(t, ok)
	assert.Equal(t, "electronics", category)
	assert.True(t, found.Context().Timestamp().Equal(at))
}

// Test 2: 查不存在的交易
func TestTransactionRepository_FindByID_NotFound(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTransactionRepository(db)

	// Act
	_, err := repo.FindByID(nil, domain.NewTransactionID())

	// Assert
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransactionNotFound))
}

// Test 3: 帳戶交易記錄按創建時間降序
func TestTransactionRepository_FindByAccountID_OrdersNewestFirst(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	accountRepo := NewAccountRepository(db)
	repo := NewTransactionRepository(db)
	account := createTestAccount(t, accountRepo, "CUST-001")
	other := createTestAccount(t, accountRepo, "CUST-002")

	context := domain.EarningContext("general", "purchase", nil)
	first := saveTransaction(t, repo, account.ID(), domain.TransactionEarn, 100, context)
	time.Sleep(10 * time.Millisecond) // 保證 created_at 有先後
	second := saveTransaction(t, repo, account.ID(), domain.TransactionRedeem, 50, domain.RedemptionContext(nil))
	saveTransaction(t, repo, other.ID(), domain.TransactionEarn, 999, context)

	// Act
	transactions, err := repo.FindByAccountID(nil, account.ID(), 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.True(t, transactions[0].ID().Equals(second.ID()))
	assert.True(t, transactions[1].ID().Equals(first.ID()))

	// limit 生效：只取最新一筆
	newest, err := repo.FindByAccountID(nil, account.ID(), 1)
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.True(t, newest[0].ID().Equals(second.ID()))
}

// Test 4: 按類型過濾
func TestTransactionRepository_FindByType(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	accountRepo := NewAccountRepository(db)
	repo := NewTransactionRepository(db)
	account := createTestAccount(t, accountRepo, "CUST-001")

	context := domain.EarningContext("general", "purchase", nil)
	saveTransaction(t, repo, account.ID(), domain.TransactionEarn, 100, context)
	saveTransaction(t, repo, account.ID(), domain.TransactionEarn, 200, context)
	saveTransaction(t, repo, account.ID(), domain.TransactionRedeem, 50, domain.RedemptionContext(nil))

	// Act
	earns, err := repo.FindByType(nil, account.ID(), domain.TransactionEarn, 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, earns, 2)
	for _, transaction := range earns {
		assert.Equal(t, domain.TransactionEarn, transaction.Type())
	}
}

// Test 5: 未處理記錄查詢與標記處理
func TestTransactionRepository_MarkProcessed(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	accountRepo := NewAccountRepository(db)
	repo := NewTransactionRepository(db)
	account := createTestAccount(t, accountRepo, "CUST-001")

	context := domain.EarningContext("general", "purchase", nil)
	transaction := saveTransaction(t, repo, account.ID(), domain.TransactionEarn, 100, context)

	unprocessed, err := repo.FindUnprocessed(nil)
	require.NoError(t, err)
	require.Len(t, unprocessed, 1)

	// Act
	err = repo.MarkProcessed(nil, transaction.ID())

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(nil, transaction.ID())
	require.NoError(t, err)
	assert.True(t, found.IsProcessed())
	firstProcessedAt := found.ProcessedAt()

	unprocessed, err = repo.FindUnprocessed(nil)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)

	// 重複標記為冪等，處理時間不變
	require.NoError(t, repo.MarkProcessed(nil, transaction.ID()))
	again, err := repo.FindByID(nil, transaction.ID())
	require.NoError(t, err)
	assert.True(t, again.ProcessedAt().Equal(*firstProcessedAt))

	// 不存在的交易
	err = repo.MarkProcessed(nil, domain.NewTransactionID())
	assert.True(t, errors.Is(err, domain.ErrTransactionNotFound))
}

// Test 6: 按類型統計積分總和
func TestTransactionRepository_TotalPointsByType(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	accountRepo := NewAccountRepository(db)
	repo := NewTransactionRepository(db)
	account := createTestAccount(t, accountRepo, "CUST-001")

	context := domain.EarningContext("general", "purchase", nil)
	saveTransaction(t, repo, account.ID(), domain.TransactionEarn, 100, context)
	saveTransaction(t, repo, account.ID(), domain.TransactionEarn, 250, context)
	saveTransaction(t, repo, account.ID(), domain.TransactionRedeem, 50, domain.RedemptionContext(nil))

	// Act
	total, err := repo.TotalPointsByType(nil, account.ID(), domain.TransactionEarn)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 350, total.Value())

	// 沒有記錄時總和為零
	zero, err := repo.TotalPointsByType(nil, account.ID(), domain.TransactionExpire)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Value())
}
