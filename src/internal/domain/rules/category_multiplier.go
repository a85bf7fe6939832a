package rules

import (
	"fmt"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// CategoryMultiplierRule 類別乘數規則
//
// 對指定消費類別套用乘數：基礎積分（金額按轉換率換算）× 乘數。
type CategoryMultiplierRule struct {
	category   string
	multiplier float64
	rate       loyalty.ConversionRate
	priority   int
}

// NewCategoryMultiplierRule 創建類別乘數規則
func NewCategoryMultiplierRule(category string, multiplier float64, rate loyalty.ConversionRate) *CategoryMultiplierRule {
	return &CategoryMultiplierRule{
		category:   category,
		multiplier: multiplier,
		rate:       rate,
		priority:   100,
	}
}

// CalculatePoints 計算積分：基礎積分 × 類別乘數
func (r *CategoryMultiplierRule) CalculatePoints(amount loyalty.Money, context loyalty.TransactionContext) (loyalty.Points, error) {
	basePoints := amount.ConvertToPoints(r.rate)
	return basePoints.Multiply(r.multiplier)
}

// IsApplicable 類別匹配時適用
func (r *CategoryMultiplierRule) IsApplicable(context loyalty.TransactionContext) bool {
	return context.Category() == r.category
}

// Priority 獲取優先級
func (r *CategoryMultiplierRule) Priority() int {
	return r.priority
}

// Name 獲取規則名稱
func (r *CategoryMultiplierRule) Name() string {
	return fmt.Sprintf("category_%s_multiplier", r.category)
}

// Description 獲取規則描述
func (r *CategoryMultiplierRule) Description() string {
	return fmt.Sprintf("%s 類別消費積分 %.1f 倍", r.category, r.multiplier)
}
