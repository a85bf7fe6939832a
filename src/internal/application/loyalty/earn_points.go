package loyalty

import (
	"log/slog"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/fraud"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/rules"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// ===========================
// EarnPoints Use Case
// ===========================

// EarnPointsCommand 賺取積分指令（Input DTO）
type EarnPointsCommand struct {
	AccountID    string
	AmountCents  int
	CurrencyCode string
	Category     string
	Source       string
	Metadata     map[string]interface{}
}

// EarnPointsResult 賺取積分結果（Output DTO）
type EarnPointsResult struct {
	TransactionID   string
	PointsEarned    int
	AvailablePoints int
	PendingPoints   int
	FraudScore      float64
	FraudSuspicious bool
}

// EarnPointsUseCase 賺取積分 Use Case 接口
//
// 業務規則：
// 1. 先風控後計算：風險分數達到攔截門檻時整筆拒絕
// 2. 積分由規則引擎疊加計算（所有適用規則相加）
// 3. 賺取的積分進入 pending，待確認後才可用
type EarnPointsUseCase interface {
	Execute(cmd EarnPointsCommand) (*EarnPointsResult, error)
}

// EarnPointsUseCaseImpl 賺取積分 Use Case 實作
type EarnPointsUseCaseImpl struct {
	accountRepo     loyalty.AccountRepository
	transactionRepo loyalty.TransactionRepository
	engine          *rules.Engine
	fraudService    *fraud.DetectionService
	txManager       shared.TransactionManager
	publisher       shared.EventPublisher
	audit           *AuditService
	logger          *slog.Logger
}

// NewEarnPointsUseCase 創建 Use Case 實例
func NewEarnPointsUseCase(
	accountRepo loyalty.AccountRepository,
	transactionRepo loyalty.TransactionRepository,
	engine *rules.Engine,
	fraudService *fraud.DetectionService,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	audit *AuditService,
	logger *slog.Logger,
) EarnPointsUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &EarnPointsUseCaseImpl{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		engine:          engine,
		fraudService:    fraudService,
		txManager:       txManager,
		publisher:       publisher,
		audit:           audit,
		logger:          logger,
	}
}

// Execute 執行賺取積分
//
// 業務流程：
// 1. 驗證輸入並轉換為 Value Object
// 2. 風控分析（事務外，攔截的審計記錄不能隨回滾消失）：
//    應攔截 → 記錄審計並拒絕；可疑但未達門檻 → 記錄警告後照常處理
// 3. 在事務中執行：
//    a. 重新查詢帳戶
//    b. 規則引擎計算積分
//    c. 聚合執行 EarnPoints（進入 pending）
//    d. 保存交易記錄與帳戶
//    e. 記錄審計
// 4. 事務提交後發布領域事件並清空緩衝
//
// 錯誤處理：
// - 風控攔截 → loyalty.ErrFraudDetected（帶分數與原因）
// - 帳戶非啟用狀態 → loyalty.ErrInactiveAccount
func (uc *EarnPointsUseCaseImpl) Execute(cmd EarnPointsCommand) (*EarnPointsResult, error) {
	// Step 1: 驗證輸入
	accountID, err := loyalty.AccountIDFromString(cmd.AccountID)
	if err != nil {
		return nil, err
	}

	currency, err := loyalty.NewCurrency(cmd.CurrencyCode)
	if err != nil {
		return nil, err
	}

	amount, err := loyalty.MoneyFromCents(cmd.AmountCents, currency)
	if err != nil {
		return nil, err
	}

	context := loyalty.EarningContext(cmd.Category, cmd.Source, cmd.Metadata)

	// Step 2: 風控分析
	account, err := uc.accountRepo.FindByID(nil, accountID)
	if err != nil {
		return nil, err
	}

	fraudResult := uc.fraudService.Analyze(account, amount, context)
	if fraudResult.ShouldBlock() {
		uc.audit.Record(nil, account.ID(), AuditActionFraudBlocked, map[string]interface{}{
			"amount_cents": amount.Amount(),
			"fraud_score":  fraudResult.Score(),
			"reasons":      fraudResult.Reasons(),
		})
		return nil, loyalty.ErrFraudDetected.WithContext(
			"account_id", account.ID().String(),
			"fraud_score", fraudResult.Score(),
			"reasons", fraudResult.Reasons(),
		)
	}
	if fraudResult.IsSuspicious() {
		uc.logger.Warn("可疑交易照常處理",
			"account_id", account.ID().String(),
			"fraud_score", fraudResult.Score(),
		)
	}

	// Step 3: 在事務中執行業務邏輯
	var (
		transaction *loyalty.PointsTransaction
		points      loyalty.Points
	)

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		account, err = uc.accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return err
		}

		points, err = uc.engine.CalculateEarnedPoints(amount, context)
		if err != nil {
			return err
		}

		transaction, err = account.EarnPoints(points, context)
		if err != nil {
			return err
		}

		if err := uc.transactionRepo.Save(ctx, transaction); err != nil {
			return err
		}
		if err := uc.accountRepo.Update(ctx, account); err != nil {
			return err
		}

		uc.audit.Record(ctx, account.ID(), AuditActionPointsEarned, map[string]interface{}{
			"transaction_id": transaction.ID().String(),
			"amount_cents":   amount.Amount(),
			"points":         points.Value(),
			"category":       cmd.Category,
			"fraud_score":    fraudResult.Score(),
		})

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Step 4: 發布領域事件
	dispatchEvents(uc.publisher, account)

	return &EarnPointsResult{
		TransactionID:   transaction.ID().String(),
		PointsEarned:    points.Value(),
		AvailablePoints: account.AvailablePoints().Value(),
		PendingPoints:   account.PendingPoints().Value(),
		FraudScore:      fraudResult.Score(),
		FraudSuspicious: fraudResult.IsSuspicious(),
	}, nil
}
