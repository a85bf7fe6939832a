package loyalty

import (
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// AdjustPoints Use Case
// ===========================

// AdjustmentDirection 調整方向
type AdjustmentDirection string

const (
	// AdjustmentCredit 信用調整（增加可用積分）
	AdjustmentCredit AdjustmentDirection = "credit"

	// AdjustmentDebit 借記調整（減少可用積分，超額時封頂為零）
	AdjustmentDebit AdjustmentDirection = "debit"
)

// AdjustPointsCommand 調整積分指令（Input DTO）
type AdjustPointsCommand struct {
	AccountID string
	Points    int
	Direction AdjustmentDirection
	Reason    string
}

// AdjustPointsResult 調整積分結果（Output DTO）
//
// PointsAdjusted 是實際調整的數量：借記超過餘額時小於請求數量。
type AdjustPointsResult struct {
	TransactionID   string
	PointsAdjusted  int
	AvailablePoints int
}

// AdjustPointsUseCase 調整積分 Use Case 接口
//
// 業務規則：
// 1. 調整直接作用於 available，不經過 pending；貸記同步累加 lifetime，借記不回溯
// 2. 借記超過餘額時靜默封頂為零，不視為錯誤
type AdjustPointsUseCase interface {
	Execute(cmd AdjustPointsCommand) (*AdjustPointsResult, error)
}

// AdjustPointsUseCaseImpl 調整積分 Use Case 實作
type AdjustPointsUseCaseImpl struct {
	accountRepo     loyalty.AccountRepository
	transactionRepo loyalty.TransactionRepository
	txManager       shared.TransactionManager
	audit           *AuditService
}

// NewAdjustPointsUseCase 創建 Use Case 實例
func NewAdjustPointsUseCase(
	accountRepo loyalty.AccountRepository,
	transactionRepo loyalty.TransactionRepository,
	txManager shared.TransactionManager,
	audit *AuditService,
) AdjustPointsUseCase {
	return &AdjustPointsUseCaseImpl{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		audit:           audit,
	}
}

// Execute 執行調整積分
//
// 錯誤處理：
// - Direction 不是 credit 或 debit → loyalty.ErrInvalidTransactionType
// - 帳戶不存在 → loyalty.ErrAccountNotFound
func (uc *AdjustPointsUseCaseImpl) Execute(cmd AdjustPointsCommand) (*AdjustPointsResult, error) {
	accountID, err := loyalty.AccountIDFromString(cmd.AccountID)
	if err != nil {
		return nil, err
	}

	points, err := loyalty.NewPoints(cmd.Points)
	if err != nil {
		return nil, err
	}

	if cmd.Direction != AdjustmentCredit && cmd.Direction != AdjustmentDebit {
		return nil, loyalty.ErrInvalidTransactionType.WithContext(
			"direction", string(cmd.Direction),
		)
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

		switch cmd.Direction {
		case AdjustmentCredit:
			transaction, err = account.CreditAdjustment(points, cmd.Reason)
		case AdjustmentDebit:
			transaction, err = account.DebitAdjustment(points, cmd.Reason)
		}
		if err != nil {
			return err
		}

		if err := uc.transactionRepo.Save(ctx, transaction); err != nil {
			return err
		}
		if err := uc.accountRepo.Update(ctx, account); err != nil {
			return err
		}

		uc.audit.Record(ctx, account.ID(), AuditActionPointsAdjusted, map[string]interface{}{
			"transaction_id": transaction.ID().String(),
			"direction":      string(cmd.Direction),
			"points":         transaction.Points().Value(),
			"reason":         cmd.Reason,
		})

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &AdjustPointsResult{
		TransactionID:   transaction.ID().String(),
		PointsAdjusted:  transaction.Points().Value(),
		AvailablePoints: account.AvailablePoints().Value(),
	}, nil
}
