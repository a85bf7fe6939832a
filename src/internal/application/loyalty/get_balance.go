package loyalty

import (
	"fmt"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// GetBalanceQuery 查詢積分餘額的查詢
//
// AccountID 與 CustomerID 擇一提供，同時提供時以 AccountID 為準。
type GetBalanceQuery struct {
	AccountID  string
	CustomerID string
}

// GetBalanceResult 查詢積分餘額的結果
type GetBalanceResult struct {
	AccountID       string
	CustomerID      string
	AvailablePoints int
	PendingPoints   int
	LifetimePoints  int
	Status          string
}

// GetBalanceUseCase 查詢積分餘額 Use Case
type GetBalanceUseCase struct {
	accountRepo loyalty.AccountRepository
}

// NewGetBalanceUseCase 創建 Use Case 實例
func NewGetBalanceUseCase(accountRepo loyalty.AccountRepository) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		accountRepo: accountRepo,
	}
}

// Execute 執行查詢積分餘額
func (uc *GetBalanceUseCase) Execute(query GetBalanceQuery) (*GetBalanceResult, error) {
	return uc.ExecuteWithContext(nil, query)
}

// ExecuteWithContext 在事務上下文中執行查詢
//
// 獨立查詢時 ctx 可傳入 nil（不需要事務）。
func (uc *GetBalanceUseCase) ExecuteWithContext(
	ctx shared.TransactionContext,
	query GetBalanceQuery,
) (*GetBalanceResult, error) {
	account, err := uc.findAccount(ctx, query)
	if err != nil {
		return nil, err
	}

	return &GetBalanceResult{
		AccountID:       account.ID().String(),
		CustomerID:      account.CustomerID().String(),
		AvailablePoints: account.AvailablePoints().Value(),
		PendingPoints:   account.PendingPoints().Value(),
		LifetimePoints:  account.LifetimePoints().Value(),
		Status:          account.Status().String(),
	}, nil
}

func (uc *GetBalanceUseCase) findAccount(ctx shared.TransactionContext, query GetBalanceQuery) (*loyalty.LoyaltyAccount, error) {
	if query.AccountID != "" {
		accountID, err := loyalty.AccountIDFromString(query.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse account ID: %w", err)
		}
		return uc.accountRepo.FindByID(ctx, accountID)
	}

	customerID, err := loyalty.NewCustomerID(query.CustomerID)
	if err != nil {
		return nil, err
	}
	return uc.accountRepo.FindByCustomerID(ctx, customerID)
}
