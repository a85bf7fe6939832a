package loyalty

import (
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// ExpirePoints Use Case
// ===========================

// ExpirePointsCommand 過期積分指令（Input DTO）
type ExpirePointsCommand struct {
	AccountID string
	Points    int
	Reason    string
}

// ExpirePointsResult 過期積分結果（Output DTO）
//
// PointsExpired 是實際過期的數量（封頂為當時的 available）。
type ExpirePointsResult struct {
	TransactionID   string
	PointsExpired   int
	AvailablePoints int
}

// ExpirePointsUseCase 過期積分 Use Case 接口
//
// 業務規則：
// 1. 過期數量封頂為當前 available
// 2. available 為零時不產生交易記錄，視為成功的空操作
type ExpirePointsUseCase interface {
	Execute(cmd ExpirePointsCommand) (*ExpirePointsResult, error)
}

// ExpirePointsUseCaseImpl 過期積分 Use Case 實作
type ExpirePointsUseCaseImpl struct {
	accountRepo     loyalty.AccountRepository
	transactionRepo loyalty.TransactionRepository
	txManager       shared.TransactionManager
	audit           *AuditService
}

// NewExpirePointsUseCase 創建 Use Case 實例
func NewExpirePointsUseCase(
	accountRepo loyalty.AccountRepository,
	transactionRepo loyalty.TransactionRepository,
	txManager shared.TransactionManager,
	audit *AuditService,
) ExpirePointsUseCase {
	return &ExpirePointsUseCaseImpl{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		audit:           audit,
	}
}

// Execute 執行過期積分
func (uc *ExpirePointsUseCaseImpl) Execute(cmd ExpirePointsCommand) (*ExpirePointsResult, error) {
	accountID, err := loyalty.AccountIDFromString(cmd.AccountID)
	if err != nil {
		return nil, err
	}

	points, err := loyalty.NewPoints(cmd.Points)
	if err != nil {
		return nil, err
	}

	var (
		account     *loyalty.LoyaltyAccount
		transaction *loyalty.PointsTransaction
	)

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		account, err = uc.accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return err
		}

		transaction, err = account.ExpirePoints(points, cmd.Reason)
		if err != nil {
			return err
		}

		// available 為零時沒有交易記錄可存
		if transaction == nil {
			return nil
		}

		if err := uc.transactionRepo.Save(ctx, transaction); err != nil {
			return err
		}
		if err := uc.accountRepo.Update(ctx, account); err != nil {
			return err
		}

		uc.audit.Record(ctx, account.ID(), AuditActionPointsExpired, map[string]interface{}{
			"transaction_id": transaction.ID().String(),
			"points":         transaction.Points().Value(),
			"reason":         cmd.Reason,
		})

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := &ExpirePointsResult{
		AvailablePoints: account.AvailablePoints().Value(),
	}
	if transaction != nil {
		result.TransactionID = transaction.ID().String()
		result.PointsExpired = transaction.Points().Value()
	}
	return result, nil
}
