package fraud

import (
	"log/slog"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// DetectionService 風控偵測服務
//
// 依序執行所有已註冊的偵測器，整體分數取各偵測器的最高分，
// 可疑偵測器的原因合併進整體結果。
type DetectionService struct {
	detectors []Detector
	logger    *slog.Logger
}

// NewDetectionService 創建風控偵測服務（預載頻率與金額偵測器）
//
// logger 為 nil 時丟棄所有日誌輸出。
func NewDetectionService(logger *slog.Logger) *DetectionService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &DetectionService{
		detectors: []Detector{
			NewVelocityDetector(),
			NewAmountDetector(),
		},
		logger: logger,
	}
}

// AddDetector 註冊額外的偵測器
func (s *DetectionService) AddDetector(detector Detector) {
	s.detectors = append(s.detectors, detector)
}

// Analyze 分析一筆交易的風險
func (s *DetectionService) Analyze(account *loyalty.LoyaltyAccount, amount loyalty.Money, context loyalty.TransactionContext) Result {
	results := []Result{}
	maxScore := 0.0
	reasons := []string{}

	for _, detector := range s.detectors {
		result := detector.Analyze(account, amount, context)
		results = append(results, result)

		if result.Score() > maxScore {
			maxScore = result.Score()
		}
		if result.IsSuspicious() {
			reasons = append(reasons, result.reasons...)
		}
	}

	overall := newAggregateResult(maxScore, reasons, results)

	if overall.IsSuspicious() {
		s.logger.Warn("風控偵測觸發",
			"account_id", account.ID().String(),
			"customer_id", account.CustomerID().String(),
			"amount", amount.ToDollars(),
			"fraud_score", overall.Score(),
			"risk_level", string(overall.Level()),
			"reasons", overall.Reasons(),
		)
	}

	return overall
}
