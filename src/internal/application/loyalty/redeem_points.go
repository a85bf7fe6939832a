package loyalty

import (
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/rules"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// RedeemPoints Use Case
// ===========================

// RedeemPointsCommand 兌換積分指令（Input DTO）
//
// 兌換幣別由匹配的兌換規則決定，不由呼叫端指定。
type RedeemPointsCommand struct {
	AccountID string
	Points    int
	Metadata  map[string]interface{}
}

// RedeemPointsResult 兌換積分結果（Output DTO）
type RedeemPointsResult struct {
	TransactionID        string
	PointsRedeemed       int
	RedemptionValueCents int
	RedemptionValue      string
	AvailablePoints      int
}

// RedeemPointsUseCase 兌換積分 Use Case 接口
//
// 業務規則：
// 1. 兌換規則按註冊順序首個匹配，決定兌換價值
// 2. 沒有規則可兌換（如未達最低積分）時整筆拒絕
// 3. 只能兌換 available 積分，pending 不可兌換
type RedeemPointsUseCase interface {
	Execute(cmd RedeemPointsCommand) (*RedeemPointsResult, error)
}

// RedeemPointsUseCaseImpl 兌換積分 Use Case 實作
type RedeemPointsUseCaseImpl struct {
	accountRepo     loyalty.AccountRepository
	transactionRepo loyalty.TransactionRepository
	engine          *rules.Engine
	txManager       shared.TransactionManager
	publisher       shared.EventPublisher
	audit           *AuditService
}

// NewRedeemPointsUseCase 創建 Use Case 實例
func NewRedeemPointsUseCase(
	accountRepo loyalty.AccountRepository,
	transactionRepo loyalty.TransactionRepository,
	engine *rules.Engine,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	audit *AuditService,
) RedeemPointsUseCase {
	return &RedeemPointsUseCaseImpl{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		engine:          engine,
		txManager:       txManager,
		publisher:       publisher,
		audit:           audit,
	}
}

// Execute 執行兌換積分
//
// 業務流程：
// 1. 驗證輸入並轉換為 Value Object
// 2. 引擎 CanRedeem 前置檢查（無規則可兌換 → 拒絕，不進事務）
// 3. 在事務中執行：
//    a. 查詢帳戶
//    b. 規則引擎計算兌換價值
//    c. 聚合執行 RedeemPoints（扣除 available）
//    d. 保存交易記錄與帳戶
//    e. 記錄審計
// 4. 事務提交後發布領域事件並清空緩衝
//
// 錯誤處理：
// - 無兌換規則匹配 → loyalty.ErrRedemptionNotAllowed
// - 餘額不足 → loyalty.ErrInsufficientPoints
// - 帳戶非啟用狀態 → loyalty.ErrInactiveAccount
func (uc *RedeemPointsUseCaseImpl) Execute(cmd RedeemPointsCommand) (*RedeemPointsResult, error) {
	// Step 1: 驗證輸入
	accountID, err := loyalty.AccountIDFromString(cmd.AccountID)
	if err != nil {
		return nil, err
	}

	points, err := loyalty.NewPoints(cmd.Points)
	if err != nil {
		return nil, err
	}

	// Step 2: 硬性前置檢查，沒有任何規則可兌換時直接拒絕
	context := loyalty.RedemptionContext(cmd.Metadata)
	if !uc.engine.CanRedeem(points, context) {
		return nil, loyalty.ErrRedemptionNotAllowed.WithContext(
			"account_id", cmd.AccountID,
			"points", points.Value(),
		)
	}

	// Step 3: 在事務中執行業務邏輯
	var (
		account     *loyalty.LoyaltyAccount
		transaction *loyalty.PointsTransaction
		value       loyalty.Money
	)

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		account, err = uc.accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return err
		}

		// 2b. 規則引擎計算兌換價值
		redeemable := false
		value, redeemable, err = uc.engine.CalculateRedemptionValue(points, context)
		if err != nil {
			return err
		}
		if !redeemable {
			return loyalty.ErrRedemptionNotAllowed.WithContext(
				"account_id", account.ID().String(),
				"points", points.Value(),
			)
		}

		// 2c. 聚合執行兌換
		transaction, err = account.RedeemPoints(points, context.With("redemption_value_cents", value.Amount()))
		if err != nil {
			return err
		}

		// 2d. 保存交易記錄與帳戶
		if err := uc.transactionRepo.Save(ctx, transaction); err != nil {
			return err
		}
		if err := uc.accountRepo.Update(ctx, account); err != nil {
			return err
		}

		uc.audit.Record(ctx, account.ID(), AuditActionPointsRedeemed, map[string]interface{}{
			"transaction_id":   transaction.ID().String(),
			"points":           points.Value(),
			"redemption_cents": value.Amount(),
		})

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Step 4: 發布領域事件
	dispatchEvents(uc.publisher, account)

	return &RedeemPointsResult{
		TransactionID:        transaction.ID().String(),
		PointsRedeemed:       points.Value(),
		RedemptionValueCents: value.Amount(),
		RedemptionValue:      value.String(),
		AvailablePoints:      account.AvailablePoints().Value(),
	}, nil
}
