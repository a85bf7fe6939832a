package loyalty

import (
	domain "github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// 測試替身（in-memory fakes）
// ===========================

// MockAccountRepository in-memory 帳戶倉儲
type MockAccountRepository struct {
	accounts        map[string]*domain.LoyaltyAccount
	SaveCallCount   int
	UpdateCallCount int
	UpdateErr       error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.LoyaltyAccount),
	}
}

func (m *MockAccountRepository) Save(ctx shared.TransactionContext, account *domain.LoyaltyAccount) error {
	m.SaveCallCount++

	for _, existing := range m.accounts {
		if existing.CustomerID().Equals(account.CustomerID()) {
			return domain.ErrAccountAlreadyExists
		}
	}

	m.accounts[account.ID().String()] = account
	return nil
}

func (m *MockAccountRepository) Update(ctx shared.TransactionContext, account *domain.LoyaltyAccount) error {
	m.UpdateCallCount++

	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, exists := m.accounts[account.ID().String()]; !exists {
		return domain.ErrAccountNotFound
	}

	m.accounts[account.ID().String()] = account
	return nil
}

func (m *MockAccountRepository) FindByID(ctx shared.TransactionContext, id domain.AccountID) (*domain.LoyaltyAccount, error) {
	account, exists := m.accounts[id.String()]
	if !exists {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (m *MockAccountRepository) FindByCustomerID(ctx shared.TransactionContext, customerID domain.CustomerID) (*domain.LoyaltyAccount, error) {
	for _, account := range m.accounts {
		if account.CustomerID().Equals(customerID) {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ExistsByCustomerID(ctx shared.TransactionContext, customerID domain.CustomerID) (bool, error) {
	for _, account := range m.accounts {
		if account.CustomerID().Equals(customerID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) FindWithPendingPoints(ctx shared.TransactionContext) ([]*domain.LoyaltyAccount, error) {
	var result []*domain.LoyaltyAccount
	for _, account := range m.accounts {
		if !account.PendingPoints().IsZero() {
			result = append(result, account)
		}
	}
	return result, nil
}

func (m *MockAccountRepository) CountActive(ctx shared.TransactionContext) (int64, error) {
	var count int64
	for _, account := range m.accounts {
		if account.IsActive() {
			count++
		}
	}
	return count, nil
}

func (m *MockAccountRepository) Delete(ctx shared.TransactionContext, id domain.AccountID) error {
	if _, exists := m.accounts[id.String()]; !exists {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id.String())
	return nil
}

// MockTransactionRepository in-memory 交易記錄倉儲
type MockTransactionRepository struct {
	transactions  []*domain.PointsTransaction
	SaveCallCount int
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Save(ctx shared.TransactionContext, transaction *domain.PointsTransaction) error {
	m.SaveCallCount++
	m.transactions = append(m.transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) FindByID(ctx shared.TransactionContext, id domain.TransactionID) (*domain.PointsTransaction, error) {
	for _, transaction := range m.transactions {
		if transaction.ID().Equals(id) {
			return transaction, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) FindByAccountID(ctx shared.TransactionContext, accountID domain.AccountID, limit int) ([]*domain.PointsTransaction, error) {
	var result []*domain.PointsTransaction
	for _, transaction := range m.transactions {
		if transaction.AccountID().Equals(accountID) {
			result = append(result, transaction)
		}
	}
	return capped(result, limit), nil
}

func (m *MockTransactionRepository) FindByType(ctx shared.TransactionContext, accountID domain.AccountID, transactionType domain.TransactionType, limit int) ([]*domain.PointsTransaction, error) {
	var result []*domain.PointsTransaction
	for _, transaction := range m.transactions {
		if transaction.AccountID().Equals(accountID) && transaction.Type() == transactionType {
			result = append(result, transaction)
		}
	}
	return capped(result, limit), nil
}

func (m *MockTransactionRepository) FindUnprocessed(ctx shared.TransactionContext) ([]*domain.PointsTransaction, error) {
	var result []*domain.PointsTransaction
	for _, transaction := range m.transactions {
		if !transaction.IsProcessed() {
			result = append(result, transaction)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) MarkProcessed(ctx shared.TransactionContext, id domain.TransactionID) error {
	for i, transaction := range m.transactions {
		if transaction.ID().Equals(id) {
			m.transactions[i] = transaction.MarkAsProcessed()
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) TotalPointsByType(ctx shared.TransactionContext, accountID domain.AccountID, transactionType domain.TransactionType) (domain.Points, error) {
	total := domain.ZeroPoints()
	for _, transaction := range m.transactions {
		if transaction.AccountID().Equals(accountID) && transaction.Type() == transactionType {
			total = total.Add(transaction.Points())
		}
	}
	return total, nil
}

// MockAuditRepository in-memory 審計記錄倉儲
type MockAuditRepository struct {
	records        []*domain.AuditRecord
	StoreCallCount int
	StoreErr       error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Store(ctx shared.TransactionContext, record *domain.AuditRecord) error {
	m.StoreCallCount++
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *MockAuditRepository) FindByEntity(ctx shared.TransactionContext, entityType, entityID string, limit int) ([]*domain.AuditRecord, error) {
	var result []*domain.AuditRecord
	for _, record := range m.records {
		if record.EntityType() == entityType && record.EntityID() == entityID {
			result = append(result, record)
		}
	}
	return capped(result, limit), nil
}

func (m *MockAuditRepository) FindByAction(ctx shared.TransactionContext, action string, limit int) ([]*domain.AuditRecord, error) {
	var result []*domain.AuditRecord
	for _, record := range m.records {
		if record.Action() == action {
			result = append(result, record)
		}
	}
	return capped(result, limit), nil
}

// capped 套用查詢筆數上限（limit <= 0 時不限制）
func capped[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// ActionsRecorded 獲取已記錄的操作名稱（按記錄順序）
func (m *MockAuditRepository) ActionsRecorded() []string {
	actions := make([]string, 0, len(m.records))
	for _, record := range m.records {
		actions = append(actions, record.Action())
	}
	return actions
}

// MockTransactionManager 直接執行 fn 的事務管理器
type MockTransactionManager struct {
	InTransactionCallCount int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	return fn(nil)
}

// MockEventPublisher 收集已發布事件的發布器
type MockEventPublisher struct {
	Published []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(event shared.DomainEvent) error {
	m.Published = append(m.Published, event)
	return nil
}

func (m *MockEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	m.Published = append(m.Published, events...)
	return nil
}
