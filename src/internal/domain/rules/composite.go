package rules

import (
	"sort"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// CompositeEarningRule 組合賺取規則
//
// 持有一組子規則，按優先級降序疊加計算：所有適用子規則的積分相加。
// 組合本身也實現 EarningRule，因此組合可以嵌套。
//
// 計算前會把消費金額以 ContextKeyAmount 注入上下文副本，
// 讓 MinimumSpendRule 這類依賴金額的子規則能判斷適用性。
type CompositeEarningRule struct {
	rules []EarningRule
}

// NewCompositeEarningRule 創建組合賺取規則
func NewCompositeEarningRule(rules ...EarningRule) *CompositeEarningRule {
	composite := &CompositeEarningRule{
		rules: []EarningRule{},
	}
	for _, rule := range rules {
		composite.AddRule(rule)
	}
	return composite
}

// AddRule 加入子規則並維持優先級降序（同優先級保持加入順序）
func (c *CompositeEarningRule) AddRule(rule EarningRule) {
	c.rules = append(c.rules, rule)
	sort.SliceStable(c.rules, func(i, j int) bool {
		return c.rules[i].Priority() > c.rules[j].Priority()
	})
}

// RemoveRule 按名稱移除子規則（同名規則全部移除）
func (c *CompositeEarningRule) RemoveRule(name string) {
	kept := c.rules[:0]
	for _, rule := range c.rules {
		if rule.Name() != name {
			kept = append(kept, rule)
		}
	}
	c.rules = kept
}

// Rules 獲取子規則（按優先級降序）
func (c *CompositeEarningRule) Rules() []EarningRule {
	return append([]EarningRule{}, c.rules...)
}

// ApplicableRules 獲取適用於指定上下文的子規則
func (c *CompositeEarningRule) ApplicableRules(amount loyalty.Money, context loyalty.TransactionContext) []EarningRule {
	enriched := context.With(loyalty.ContextKeyAmount, amount)

	applicable := []EarningRule{}
	for _, rule := range c.rules {
		if rule.IsApplicable(enriched) {
			applicable = append(applicable, rule)
		}
	}
	return applicable
}

// CalculatePoints 疊加計算所有適用子規則的積分
func (c *CompositeEarningRule) CalculatePoints(amount loyalty.Money, context loyalty.TransactionContext) (loyalty.Points, error) {
	enriched := context.With(loyalty.ContextKeyAmount, amount)

	total := loyalty.ZeroPoints()
	for _, rule := range c.rules {
		if !rule.IsApplicable(enriched) {
			continue
		}

		points, err := rule.CalculatePoints(amount, enriched)
		if err != nil {
			return loyalty.ZeroPoints(), err
		}
		total = total.Add(points)
	}
	return total, nil
}

// IsApplicable 任一子規則適用時組合即適用
func (c *CompositeEarningRule) IsApplicable(context loyalty.TransactionContext) bool {
	for _, rule := range c.rules {
		if rule.IsApplicable(context) {
			return true
		}
	}
	return false
}

// Priority 組合自身不參與優先級排序
func (c *CompositeEarningRule) Priority() int {
	return 0
}

// Name 獲取規則名稱
func (c *CompositeEarningRule) Name() string {
	return "composite_earning_rule"
}

// Description 獲取規則描述
func (c *CompositeEarningRule) Description() string {
	return "組合賺取規則：疊加所有適用子規則的積分"
}
