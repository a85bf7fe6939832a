package rules

import (
	"log/slog"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// Engine 積分規則引擎
//
// 賺取側委託給 CompositeEarningRule 疊加計算；
// 兌換側按註冊順序取第一個可兌換的規則（首個匹配）。
type Engine struct {
	earningRules    *CompositeEarningRule
	redemptionRules []RedemptionRule
	logger          *slog.Logger
}

// NewEngine 創建規則引擎
//
// logger 為 nil 時丟棄所有日誌輸出。
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		earningRules:    NewCompositeEarningRule(),
		redemptionRules: []RedemptionRule{},
		logger:          logger,
	}
}

// AddEarningRule 註冊賺取規則
func (e *Engine) AddEarningRule(rule EarningRule) {
	e.earningRules.AddRule(rule)
}

// RemoveEarningRule 按名稱移除賺取規則
func (e *Engine) RemoveEarningRule(name string) {
	e.earningRules.RemoveRule(name)
}

// AddRedemptionRule 註冊兌換規則（註冊順序即匹配順序）
func (e *Engine) AddRedemptionRule(rule RedemptionRule) {
	e.redemptionRules = append(e.redemptionRules, rule)
}

// EarningRules 獲取已註冊的賺取規則（按優先級降序）
func (e *Engine) EarningRules() []EarningRule {
	return e.earningRules.Rules()
}

// RedemptionRules 獲取已註冊的兌換規則（按註冊順序）
func (e *Engine) RedemptionRules() []RedemptionRule {
	snapshot := make([]RedemptionRule, len(e.redemptionRules))
	copy(snapshot, e.redemptionRules)
	return snapshot
}

// CalculateEarnedPoints 計算消費應賺取的積分
//
// 沒有任何規則適用時返回零積分，不視為錯誤。
func (e *Engine) CalculateEarnedPoints(amount loyalty.Money, context loyalty.TransactionContext) (loyalty.Points, error) {
	points, err := e.earningRules.CalculatePoints(amount, context)
	if err != nil {
		return loyalty.ZeroPoints(), err
	}

	e.logger.Debug("計算賺取積分",
		"amount", amount.String(),
		"category", context.Category(),
		"points", points.Value(),
	)

	return points, nil
}

// CalculateRedemptionValue 計算積分的兌換價值
//
// 按註冊順序取第一個 CanRedeem 的規則。沒有規則可兌換時
// 返回零金額與 false，並記錄警告。
func (e *Engine) CalculateRedemptionValue(points loyalty.Points, context loyalty.TransactionContext) (loyalty.Money, bool, error) {
	for _, rule := range e.redemptionRules {
		if !rule.CanRedeem(points, context) {
			continue
		}

		value, err := rule.CalculateRedemptionValue(points, context)
		if err != nil {
			return loyalty.Money{}, false, err
		}
		return value, true, nil
	}

	e.logger.Warn("沒有可用的兌換規則",
		"points", points.Value(),
	)

	return loyalty.Money{}, false, nil
}

// CanRedeem 判斷是否有任一兌換規則可兌換指定積分
//
// 編排層在計算價值前先以此做硬性前置檢查。
func (e *Engine) CanRedeem(points loyalty.Points, context loyalty.TransactionContext) bool {
	for _, rule := range e.redemptionRules {
		if rule.CanRedeem(points, context) {
			return true
		}
	}
	return false
}
