package loyalty

import (
	"log/slog"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// 審計操作名稱
const (
	AuditActionAccountCreated = "account_created"
	AuditActionPointsEarned   = "points_earned"
	AuditActionPointsRedeemed = "points_redeemed"
	AuditActionPointsAdjusted = "points_adjusted"
	AuditActionPointsExpired  = "points_expired"
	AuditActionFraudBlocked   = "fraud_blocked"
)

// AuditService 審計服務
//
// 審計是盡力而為的：記錄失敗只寫日誌，不讓業務操作失敗。
type AuditService struct {
	auditRepo loyalty.AuditRepository
	logger    *slog.Logger
}

// NewAuditService 創建審計服務
//
// logger 為 nil 時丟棄所有日誌輸出。
func NewAuditService(auditRepo loyalty.AuditRepository, logger *slog.Logger) *AuditService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record 記錄一次帳戶操作
func (s *AuditService) Record(ctx shared.TransactionContext, accountID loyalty.AccountID, action string, details map[string]interface{}) {
	record := loyalty.NewAuditRecord("loyalty_account", accountID.String(), action, details)

	if err := s.auditRepo.Store(ctx, record); err != nil {
		s.logger.Error("審計記錄儲存失敗",
			"account_id", accountID.String(),
			"action", action,
			"error", err.Error(),
		)
	}
}

// History 查詢帳戶的審計記錄（最新在前，limit <= 0 時返回全部）
func (s *AuditService) History(ctx shared.TransactionContext, accountID loyalty.AccountID, limit int) ([]*loyalty.AuditRecord, error) {
	return s.auditRepo.FindByEntity(ctx, "loyalty_account", accountID.String(), limit)
}
