package loyalty

import (
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// CreateAccount Use Case
// ===========================

// CreateAccountCommand 創建帳戶指令（Input DTO）
//
// 設計原則：
// - 只包含外部輸入數據，使用原始類型
// - 由 Use Case 轉換為 Value Object
type CreateAccountCommand struct {
	CustomerID string
}

// CreateAccountResult 創建帳戶結果（Output DTO）
type CreateAccountResult struct {
	AccountID  string
	CustomerID string
	Status     string
}

// CreateAccountUseCase 創建帳戶 Use Case 接口
//
// 業務規則：
// 1. 一個客戶只能有一個忠誠度帳戶
// 2. 新帳戶以 active 狀態、零餘額開始
type CreateAccountUseCase interface {
	Execute(cmd CreateAccountCommand) (*CreateAccountResult, error)
}

// CreateAccountUseCaseImpl 創建帳戶 Use Case 實作
type CreateAccountUseCaseImpl struct {
	accountRepo loyalty.AccountRepository
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	audit       *AuditService
}

// NewCreateAccountUseCase 創建 Use Case 實例
func NewCreateAccountUseCase(
	accountRepo loyalty.AccountRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	audit *AuditService,
) CreateAccountUseCase {
	return &CreateAccountUseCaseImpl{
		accountRepo: accountRepo,
		txManager:   txManager,
		publisher:   publisher,
		audit:       audit,
	}
}

// Execute 執行創建帳戶
//
// 業務流程：
// 1. 驗證輸入並轉換為 Value Object
// 2. 在事務中執行：
//    a. 檢查客戶是否已有帳戶
//    b. 創建 LoyaltyAccount 聚合
//    c. 保存到資料庫
//    d. 記錄審計
// 3. 事務提交後發布領域事件並清空緩衝
//
// 錯誤處理：
// - CustomerID 無效 → loyalty.ErrInvalidCustomerID
// - 客戶已有帳戶 → loyalty.ErrAccountAlreadyExists
func (uc *CreateAccountUseCaseImpl) Execute(cmd CreateAccountCommand) (*CreateAccountResult, error) {
	// Step 1: 驗證輸入
	customerID, err := loyalty.NewCustomerID(cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	// Step 2: 在事務中執行業務邏輯
	var account *loyalty.LoyaltyAccount

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		exists, err := uc.accountRepo.ExistsByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		if exists {
			return loyalty.ErrAccountAlreadyExists.WithContext(
				"customer_id", cmd.CustomerID,
			)
		}

		account, err = loyalty.NewLoyaltyAccount(customerID)
		if err != nil {
			return err
		}

		if err := uc.accountRepo.Save(ctx, account); err != nil {
			return err
		}

		uc.audit.Record(ctx, account.ID(), AuditActionAccountCreated, map[string]interface{}{
			"customer_id": customerID.String(),
		})

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Step 3: 發布領域事件
	dispatchEvents(uc.publisher, account)

	return &CreateAccountResult{
		AccountID:  account.ID().String(),
		CustomerID: account.CustomerID().String(),
		Status:     account.Status().String(),
	}, nil
}
