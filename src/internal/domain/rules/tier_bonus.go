package rules

import (
	"fmt"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// TierBonusRule 會員等級加成規則
//
// 對指定會員等級套用乘數。等級由上下文的 tier 鍵提供。
type TierBonusRule struct {
	tier       string
	multiplier float64
	rate       loyalty.ConversionRate
	priority   int
}

// NewTierBonusRule 創建會員等級加成規則
func NewTierBonusRule(tier string, multiplier float64, rate loyalty.ConversionRate) *TierBonusRule {
	return &TierBonusRule{
		tier:       tier,
		multiplier: multiplier,
		rate:       rate,
		priority:   200,
	}
}

// CalculatePoints 計算積分：基礎積分 × 等級乘數
func (r *TierBonusRule) CalculatePoints(amount loyalty.Money, context loyalty.TransactionContext) (loyalty.Points, error) {
	basePoints := amount.ConvertToPoints(r.rate)
	return basePoints.Multiply(r.multiplier)
}

// IsApplicable 會員等級匹配時適用
func (r *TierBonusRule) IsApplicable(context loyalty.TransactionContext) bool {
	tier, ok := context.Get(loyalty.ContextKeyTier)
	if !ok {
		return false
	}
	value, ok := tier.(string)
	return ok && value == r.tier
}

// Priority 獲取優先級
func (r *TierBonusRule) Priority() int {
	return r.priority
}

// Name 獲取規則名稱
func (r *TierBonusRule) Name() string {
	return fmt.Sprintf("tier_%s_bonus", r.tier)
}

// Description 獲取規則描述
func (r *TierBonusRule) Description() string {
	return fmt.Sprintf("%s 等級會員積分 %.1f 倍", r.tier, r.multiplier)
}
