package fraud

import (
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// 偵測器讀取的上下文鍵。數值由呼叫方（通常是 Application Layer
// 查詢交易歷史後）放入交易上下文。
const (
	// ContextKeyAccountAverageAmount 帳戶的平均交易金額（美元）
	ContextKeyAccountAverageAmount = "account_average_amount"

	// ContextKeyRecentTransactionCount 近期（24 小時內）交易筆數
	ContextKeyRecentTransactionCount = "recent_transaction_count"

	// ContextKeyRecentTotalAmount 近期（24 小時內）交易總金額（美元）
	ContextKeyRecentTotalAmount = "recent_total_amount"
)

// Detector 風控偵測器介面
type Detector interface {
	// Analyze 分析一筆交易並返回風險評分
	Analyze(account *loyalty.LoyaltyAccount, amount loyalty.Money, context loyalty.TransactionContext) Result

	// Name 偵測器名稱
	Name() string
}

// ===========================
// 金額偵測器
// ===========================

// AmountDetector 金額偵測器
//
// 依交易金額的絕對大小以及相對帳戶平均值的偏離程度評分。
type AmountDetector struct {
	suspiciousAmount float64
	highRiskAmount   float64
}

// NewAmountDetector 創建金額偵測器（預設門檻 $1000 / $5000）
func NewAmountDetector() *AmountDetector {
	return &AmountDetector{
		suspiciousAmount: 1000.0,
		highRiskAmount:   5000.0,
	}
}

// NewAmountDetectorWithThresholds 創建自訂門檻的金額偵測器
func NewAmountDetectorWithThresholds(suspiciousAmount, highRiskAmount float64) *AmountDetector {
	return &AmountDetector{
		suspiciousAmount: suspiciousAmount,
		highRiskAmount:   highRiskAmount,
	}
}

// Analyze 分析交易金額
func (d *AmountDetector) Analyze(account *loyalty.LoyaltyAccount, amount loyalty.Money, context loyalty.TransactionContext) Result {
	transactionAmount := amount.ToDollars()
	reasons := []string{}
	score := 0.0

	switch {
	case transactionAmount >= d.highRiskAmount:
		reasons = append(reasons, "Unusually high transaction amount")
		score = 0.7
	case transactionAmount >= d.suspiciousAmount:
		reasons = append(reasons, "High transaction amount")
		score = 0.3
	}

	averageAmount := floatFromContext(context, ContextKeyAccountAverageAmount, 100.0)
	if transactionAmount > averageAmount*10 {
		reasons = append(reasons, "Amount significantly higher than account average")
		score += 0.4
	}

	return NewResult(score, reasons)
}

// Name 獲取偵測器名稱
func (d *AmountDetector) Name() string {
	return "amount_detector"
}

// ===========================
// 頻率偵測器
// ===========================

// VelocityDetector 頻率偵測器
//
// 依近期交易筆數與總金額評分。超過上限的七成即視為偏高。
type VelocityDetector struct {
	maxDailyTransactions int
	maxDailyAmount       float64
}

// NewVelocityDetector 創建頻率偵測器（預設上限 50 筆 / $10000）
func NewVelocityDetector() *VelocityDetector {
	return &VelocityDetector{
		maxDailyTransactions: 50,
		maxDailyAmount:       10000.0,
	}
}

// NewVelocityDetectorWithLimits 創建自訂上限的頻率偵測器
func NewVelocityDetectorWithLimits(maxDailyTransactions int, maxDailyAmount float64) *VelocityDetector {
	return &VelocityDetector{
		maxDailyTransactions: maxDailyTransactions,
		maxDailyAmount:       maxDailyAmount,
	}
}

// Analyze 分析交易頻率
func (d *VelocityDetector) Analyze(account *loyalty.LoyaltyAccount, amount loyalty.Money, context loyalty.TransactionContext) Result {
	recentCount := intFromContext(context, ContextKeyRecentTransactionCount, 0)
	recentTotal := floatFromContext(context, ContextKeyRecentTotalAmount, 0.0)

	reasons := []string{}
	score := 0.0

	switch {
	case recentCount > d.maxDailyTransactions:
		reasons = append(reasons, "High transaction frequency")
		score += 0.4
	case float64(recentCount) > float64(d.maxDailyTransactions)*0.7:
		reasons = append(reasons, "Elevated transaction frequency")
		score += 0.2
	}

	switch {
	case recentTotal > d.maxDailyAmount:
		reasons = append(reasons, "High daily transaction volume")
		score += 0.5
	case recentTotal > d.maxDailyAmount*0.7:
		reasons = append(reasons, "Elevated daily transaction volume")
		score += 0.3
	}

	return NewResult(score, reasons)
}

// Name 獲取偵測器名稱
func (d *VelocityDetector) Name() string {
	return "velocity_detector"
}

// 上下文的數值可能以 int 或 float64 存放
func floatFromContext(context loyalty.TransactionContext, key string, fallback float64) float64 {
	raw, ok := context.Get(key)
	if !ok {
		return fallback
	}
	switch value := raw.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return fallback
	}
}

func intFromContext(context loyalty.TransactionContext, key string, fallback int) int {
	raw, ok := context.Get(key)
	if !ok {
		return fallback
	}
	switch value := raw.(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	default:
		return fallback
	}
}
