package rules

import (
	"fmt"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// MinimumSpendRule 最低消費獎勵規則
//
// 消費金額達到門檻時套用乘數：基礎積分（金額按轉換率換算）× 乘數。
// 積分隨金額等比增長，與 CategoryMultiplierRule 共用同一計算公式。
// 適用性依據上下文中由 CompositeEarningRule 注入的消費金額判斷。
type MinimumSpendRule struct {
	minimumAmount loyalty.Money
	multiplier    float64
	rate          loyalty.ConversionRate
	priority      int
}

// NewMinimumSpendRule 創建最低消費獎勵規則
func NewMinimumSpendRule(minimumAmount loyalty.Money, multiplier float64, rate loyalty.ConversionRate) *MinimumSpendRule {
	return &MinimumSpendRule{
		minimumAmount: minimumAmount,
		multiplier:    multiplier,
		rate:          rate,
		priority:      125,
	}
}

// CalculatePoints 計算積分：基礎積分 × 乘數
func (r *MinimumSpendRule) CalculatePoints(amount loyalty.Money, context loyalty.TransactionContext) (loyalty.Points, error) {
	basePoints := amount.ConvertToPoints(r.rate)
	return basePoints.Multiply(r.multiplier)
}

// IsApplicable 上下文中的消費金額達到門檻時適用
func (r *MinimumSpendRule) IsApplicable(context loyalty.TransactionContext) bool {
	raw, ok := context.Get(loyalty.ContextKeyAmount)
	if !ok {
		return false
	}

	amount, ok := raw.(loyalty.Money)
	if !ok {
		return false
	}

	meets, err := amount.GreaterThanOrEqual(r.minimumAmount)
	return err == nil && meets
}

// Priority 獲取優先級
func (r *MinimumSpendRule) Priority() int {
	return r.priority
}

// Name 獲取規則名稱
func (r *MinimumSpendRule) Name() string {
	return fmt.Sprintf("minimum_spend_%d", r.minimumAmount.Amount())
}

// Description 獲取規則描述
func (r *MinimumSpendRule) Description() string {
	return fmt.Sprintf("消費滿 %s 積分 %.1f 倍", r.minimumAmount.String(), r.multiplier)
}
