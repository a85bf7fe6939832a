package loyalty

import (
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// ConfirmPendingPoints Use Case
// ===========================

// ConfirmPointsCommand 確認待確認積分指令（Input DTO）
//
// Points 為 nil 時確認全部待確認積分。
type ConfirmPointsCommand struct {
	AccountID string
	Points    *int
}

// ConfirmPointsResult 確認待確認積分結果（Output DTO）
type ConfirmPointsResult struct {
	PointsConfirmed int
	AvailablePoints int
	PendingPoints   int
	LifetimePoints  int
}

// ConfirmPointsUseCase 確認待確認積分 Use Case 接口
//
// 業務規則：
// 1. 確認數量不能超過當前 pending
// 2. 確認後積分移入 available 並累加 lifetime
type ConfirmPointsUseCase interface {
	Execute(cmd ConfirmPointsCommand) (*ConfirmPointsResult, error)
}

// ConfirmPointsUseCaseImpl 確認待確認積分 Use Case 實作
type ConfirmPointsUseCaseImpl struct {
	accountRepo loyalty.AccountRepository
	txManager   shared.TransactionManager
}

// NewConfirmPointsUseCase 創建 Use Case 實例
func NewConfirmPointsUseCase(
	accountRepo loyalty.AccountRepository,
	txManager shared.TransactionManager,
) ConfirmPointsUseCase {
	return &ConfirmPointsUseCaseImpl{
		accountRepo: accountRepo,
		txManager:   txManager,
	}
}

// Execute 執行確認待確認積分
//
// 錯誤處理：
// - 確認數量超過 pending → loyalty.ErrConfirmExceedsPending
// - 帳戶不存在 → loyalty.ErrAccountNotFound
func (uc *ConfirmPointsUseCaseImpl) Execute(cmd ConfirmPointsCommand) (*ConfirmPointsResult, error) {
	accountID, err := loyalty.AccountIDFromString(cmd.AccountID)
	if err != nil {
		return nil, err
	}

	var toConfirm *loyalty.Points
	if cmd.Points != nil {
		points, err := loyalty.NewPoints(*cmd.Points)
		if err != nil {
			return nil, err
		}
		toConfirm = &points
	}

	var (
		account   *loyalty.LoyaltyAccount
		confirmed int
	)

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		account, err = uc.accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return err
		}

		pendingBefore := account.PendingPoints().Value()

		if err := account.ConfirmPendingPoints(toConfirm); err != nil {
			return err
		}

		confirmed = pendingBefore - account.PendingPoints().Value()

		return uc.accountRepo.Update(ctx, account)
	})

	if err != nil {
		return nil, err
	}

	return &ConfirmPointsResult{
		PointsConfirmed: confirmed,
		AvailablePoints: account.AvailablePoints().Value(),
		PendingPoints:   account.PendingPoints().Value(),
		LifetimePoints:  account.LifetimePoints().Value(),
	}, nil
}
