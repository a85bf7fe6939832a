package loyalty

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/fraud"
	domain "github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/rules"
)

// ===========================
// EarnPoints Use Case 測試
// ===========================

type earnFixture struct {
	accountRepo     *MockAccountRepository
	transactionRepo *MockTransactionRepository
	auditRepo       *MockAuditRepository
	publisher       *MockEventPublisher
	engine          *rules.Engine
	useCase         EarnPointsUseCase
	accountID       string
}

func newEarnFixture(t *testing.T) *earnFixture {
	t.Helper()

	accountRepo := NewMockAccountRepository()
	transactionRepo := NewMockTransactionRepository()
	auditRepo := NewMockAuditRepository()
	publisher := NewMockEventPublisher()
	txManager := NewMockTransactionManager()
	audit := NewAuditService(auditRepo, nil)

	engine := rules.NewEngine(nil)
	engine.AddEarningRule(rules.NewCategoryMultiplierRule("electronics", 2.0, domain.StandardRate()))

	fraudService := fraud.NewDetectionService(nil)

	useCase := NewEarnPointsUseCase(
		accountRepo, transactionRepo, engine, fraudService,
		txManager, publisher, audit, nil,
	)

	customerID, err := domain.NewCustomerID("CUST-001")
	require.NoError(t, err)
	account, err := domain.NewLoyaltyAccount(customerID)
	require.NoError(t, err)
	account.ClearEvents()
	require.NoError(t, accountRepo.Save(nil, account))

	return &earnFixture{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		publisher:       publisher,
		engine:          engine,
		useCase:         useCase,
		accountID:       account.ID().String(),
	}
}

// Test 1: 成功賺取積分（$50 電子產品 2 倍 → pending 10000）
func TestEarnPointsUseCase_Success_PointsGoToPending(t *testing.T) {
	// Arrange
	fx := newEarnFixture(t)

	cmd := EarnPointsCommand{
		AccountID:    fx.accountID,
		AmountCents:  5000,
		CurrencyCode: "USD",
		Category:     "electronics",
		Source:       "purchase",
	}

	// Act
	result, err := fx.useCase.Execute(cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 10000, result.PointsEarned)
	assert.Equal(t, 0, result.AvailablePoints)
	assert.Equal(t, 10000, result.PendingPoints)
	assert.NotEmpty(t, result.TransactionID)
	assert.False(t, result.FraudSuspicious)

	// 交易記錄被保存
	assert.Equal(t, 1, fx.transactionRepo.SaveCallCount)
	// 審計記錄
	assert.Equal(t, []string{AuditActionPointsEarned}, fx.auditRepo.ActionsRecorded())
	// 領域事件被發布
	require.Len(t, fx.publisher.Published, 1)
	assert.Equal(t, "loyalty.points_earned", fx.publisher.Published[0].EventType())
}

// Test 2: 沒有規則適用時賺取零積分，交易照常入帳
func TestEarnPointsUseCase_NoApplicableRules_RecordsZeroPointTransaction(t *testing.T) {
	// Arrange
	fx := newEarnFixture(t)

	cmd := EarnPointsCommand{
		AccountID:    fx.accountID,
		AmountCents:  5000,
		CurrencyCode: "USD",
		Category:     "groceries", // 沒有規則涵蓋
		Source:       "purchase",
	}

	// Act
	result, err := fx.useCase.Execute(cmd)

	// Assert：零積分不是錯誤，帳本仍記載這筆消費
	require.NoError(t, err)
	assert.Equal(t, 0, result.PointsEarned)
	assert.Equal(t, 0, result.PendingPoints)
	assert.NotEmpty(t, result.TransactionID)

	assert.Equal(t, 1, fx.transactionRepo.SaveCallCount)
	assert.Equal(t, []string{AuditActionPointsEarned}, fx.auditRepo.ActionsRecorded())
	require.Len(t, fx.publisher.Published, 1)
	assert.Equal(t, "loyalty.points_earned", fx.publisher.Published[0].EventType())
}

// Test 3: 風控攔截（高額 + 頻率超限）
func TestEarnPointsUseCase_FraudBlocked_ReturnsErrorAndAudits(t *testing.T) {
	// Arrange
	fx := newEarnFixture(t)

	cmd := EarnPointsCommand{
		AccountID:    fx.accountID,
		AmountCents:  600000, // $6000：金額 0.7 + 平均值偏離 0.4
		CurrencyCode: "USD",
		Category:     "electronics",
		Source:       "purchase",
	}

	// Act
	result, err := fx.useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrFraudDetected))

	// 攔截被審計
	assert.Equal(t, []string{AuditActionFraudBlocked}, fx.auditRepo.ActionsRecorded())
	// 沒有交易記錄、沒有事件
	assert.Equal(t, 0, fx.transactionRepo.SaveCallCount)
	assert.Empty(t, fx.publisher.Published)

	// 帳戶餘額不變
	accountID, _ := domain.AccountIDFromString(fx.accountID)
	account, _ := fx.accountRepo.FindByID(nil, accountID)
	assert.Equal(t, 0, account.PendingPoints().Value())
}

// Test 4: 可疑但未達攔截門檻的交易照常處理
func TestEarnPointsUseCase_SuspiciousButNotBlocked_Proceeds(t *testing.T) {
	// Arrange
	fx := newEarnFixture(t)

	cmd := EarnPointsCommand{
		AccountID:    fx.accountID,
		AmountCents:  150000, // $1500：金額 0.3 + 平均值偏離 0.4 = 0.7（可疑但未攔截）
		CurrencyCode: "USD",
		Category:     "electronics",
		Source:       "purchase",
	}

	// Act
	result, err := fx.useCase.Execute(cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.FraudSuspicious)
	assert.InDelta(t, 0.7, result.FraudScore, 0.0001)
	assert.Equal(t, 300000, result.PendingPoints)
}

// Test 5: 帳戶不存在
func TestEarnPointsUseCase_AccountNotFound_ReturnsError(t *testing.T) {
	// Arrange
	fx := newEarnFixture(t)

	cmd := EarnPointsCommand{
		AccountID:    domain.NewAccountID().String(),
		AmountCents:  5000,
		CurrencyCode: "USD",
		Category:     "electronics",
		Source:       "purchase",
	}

	// Act
	_, err := fx.useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAccountNotFound))
}

// Test 6: 不支援的幣別
func TestEarnPointsUseCase_UnsupportedCurrency_ReturnsError(t *testing.T) {
	// Arrange
	fx := newEarnFixture(t)

	cmd := EarnPointsCommand{
		AccountID:    fx.accountID,
		AmountCents:  5000,
		CurrencyCode: "XXX",
		Category:     "electronics",
		Source:       "purchase",
	}

	// Act
	_, err := fx.useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedCurrency))
}
