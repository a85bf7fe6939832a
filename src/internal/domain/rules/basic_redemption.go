package rules

import (
	"github.com/shopspring/decimal"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// BasicRedemptionRule 基礎兌換規則
//
// 按固定匯率將積分兌換為指定幣別的金額，並要求最低兌換積分。
// pointsPerUnit 是兌換一個主幣別單位所需的積分（100 積分 = $1.00）。
type BasicRedemptionRule struct {
	currency      loyalty.Currency
	pointsPerUnit float64
	minimumPoints loyalty.Points
}

// NewBasicRedemptionRule 創建基礎兌換規則
//
// 前提條件：pointsPerUnit > 0。
func NewBasicRedemptionRule(currency loyalty.Currency, pointsPerUnit float64, minimumPoints loyalty.Points) *BasicRedemptionRule {
	return &BasicRedemptionRule{
		currency:      currency,
		pointsPerUnit: pointsPerUnit,
		minimumPoints: minimumPoints,
	}
}

// CalculateRedemptionValue 計算積分的貨幣價值
//
// 主單位金額 = 積分 ÷ pointsPerUnit，換算為最小單位後四捨五入。
func (r *BasicRedemptionRule) CalculateRedemptionValue(points loyalty.Points, context loyalty.TransactionContext) (loyalty.Money, error) {
	cents := decimal.NewFromInt(int64(points.Value())).
		Div(decimal.NewFromFloat(r.pointsPerUnit)).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	return loyalty.NewMoney(int(cents), r.currency)
}

// CanRedeem 積分達到最低門檻時可兌換
func (r *BasicRedemptionRule) CanRedeem(points loyalty.Points, context loyalty.TransactionContext) bool {
	return points.GreaterThanOrEqual(r.minimumPoints)
}

// MinimumPoints 獲取最低兌換積分
func (r *BasicRedemptionRule) MinimumPoints() loyalty.Points {
	return r.minimumPoints
}

// Currency 獲取兌換幣別
func (r *BasicRedemptionRule) Currency() loyalty.Currency {
	return r.currency
}

// Name 獲取規則名稱
func (r *BasicRedemptionRule) Name() string {
	return "basic_redemption_rule"
}
