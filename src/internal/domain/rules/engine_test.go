package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/rules"
)

// ===== BasicRedemptionRule 測試 =====

// Test 1: 100 積分換 $1 時，500 積分兌換 $5.00
func TestBasicRedemptionRule_StandardRate_500PointsIs5Dollars(t *testing.T) {
	// Arrange
	rule := rules.NewBasicRedemptionRule(loyalty.USD(), 100.0, mustPoints(t, 100))

	// Act
	value, err := rule.CalculateRedemptionValue(mustPoints(t, 500), loyalty.RedemptionContext(nil))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 500, value.Amount())
	assert.Equal(t, "$5.00", value.String())
}

// Test 2: 最低積分邊界（99 不可兌換，100 可兌換）
func TestBasicRedemptionRule_CanRedeem_MinimumBoundary(t *testing.T) {
	// Arrange
	rule := rules.NewBasicRedemptionRule(loyalty.USD(), 100.0, mustPoints(t, 100))
	context := loyalty.RedemptionContext(nil)

	// Assert
	assert.False(t, rule.CanRedeem(mustPoints(t, 99), context))
	assert.True(t, rule.CanRedeem(mustPoints(t, 100), context))
	assert.Equal(t, 100, rule.MinimumPoints().Value())
	assert.Equal(t, "basic_redemption_rule", rule.Name())
}

// ===== Engine 測試 =====

// Test 3: 引擎疊加計算賺取積分
func TestEngine_CalculateEarnedPoints_SumsApplicableRules(t *testing.T) {
	// Arrange
	engine := rules.NewEngine(nil)
	engine.AddEarningRule(rules.NewCategoryMultiplierRule("electronics", 2.0, loyalty.StandardRate()))
	engine.AddEarningRule(rules.NewTierBonusRule("gold", 1.5, loyalty.StandardRate()))

	amount := usdMoney(t, 5000) // $50.00
	context := loyalty.EarningContext("electronics", "purchase", map[string]interface{}{
		loyalty.ContextKeyTier: "gold",
	})

	// Act
	points, err := engine.CalculateEarnedPoints(amount, context)

	// Assert：10000（類別）+ 7500（等級）= 17500
	require.NoError(t, err)
	assert.Equal(t, 17500, points.Value())
}

// Test 4: 沒有規則適用時返回零積分，不視為錯誤
func TestEngine_CalculateEarnedPoints_NoRules_ReturnsZero(t *testing.T) {
	// Arrange
	engine := rules.NewEngine(nil)

	// Act
	points, err := engine.CalculateEarnedPoints(usdMoney(t, 5000), loyalty.EarningContext("books", "purchase", nil))

	// Assert
	require.NoError(t, err)
	assert.True(t, points.IsZero())
}

// Test 5: 兌換規則首個匹配（按註冊順序）
func TestEngine_CalculateRedemptionValue_FirstMatchWins(t *testing.T) {
	// Arrange
	engine := rules.NewEngine(nil)
	context := loyalty.RedemptionContext(nil)

	// 優惠規則 50 積分換 $1，但最低 1000 積分
	engine.AddRedemptionRule(rules.NewBasicRedemptionRule(loyalty.USD(), 50.0, mustPoints(t, 1000)))
	engine.AddRedemptionRule(rules.NewBasicRedemptionRule(loyalty.USD(), 100.0, mustPoints(t, 100)))

	// Act：500 積分不滿足第一個規則的最低 1000，落到第二個規則
	value, redeemable, err := engine.CalculateRedemptionValue(mustPoints(t, 500), context)

	// Assert
	require.NoError(t, err)
	assert.True(t, redeemable)
	assert.Equal(t, 500, value.Amount())

	// Act：2000 積分由第一個規則處理（50 積分 = $1）
	value, redeemable, err = engine.CalculateRedemptionValue(mustPoints(t, 2000), context)

	// Assert
	require.NoError(t, err)
	assert.True(t, redeemable)
	assert.Equal(t, 4000, value.Amount())
}

// Test 6: 沒有規則可兌換時返回零金額與 false
func TestEngine_CalculateRedemptionValue_NoRuleMatches_ReturnsFalse(t *testing.T) {
	// Arrange
	engine := rules.NewEngine(nil)
	engine.AddRedemptionRule(rules.NewBasicRedemptionRule(loyalty.USD(), 100.0, mustPoints(t, 100)))

	// Act
	value, redeemable, err := engine.CalculateRedemptionValue(mustPoints(t, 50), loyalty.RedemptionContext(nil))

	// Assert
	require.NoError(t, err)
	assert.False(t, redeemable)
	assert.True(t, value.IsZero())
}

// Test 7: CanRedeem 前置檢查（任一規則可兌換即為 true）
func TestEngine_CanRedeem_AnyRuleMatches(t *testing.T) {
	// Arrange
	engine := rules.NewEngine(nil)
	context := loyalty.RedemptionContext(nil)
	engine.AddRedemptionRule(rules.NewBasicRedemptionRule(loyalty.USD(), 100.0, mustPoints(t, 100)))

	// Assert
	assert.False(t, engine.CanRedeem(mustPoints(t, 99), context))
	assert.True(t, engine.CanRedeem(mustPoints(t, 100), context))
	require.Len(t, engine.RedemptionRules(), 1)
}

// Test 8: 移除賺取規則後不再參與計算
func TestEngine_RemoveEarningRule_ExcludedFromCalculation(t *testing.T) {
	// Arrange
	engine := rules.NewEngine(nil)
	engine.AddEarningRule(rules.NewCategoryMultiplierRule("electronics", 2.0, loyalty.StandardRate()))

	// Act
	engine.RemoveEarningRule("category_electronics_multiplier")
	points, err := engine.CalculateEarnedPoints(usdMoney(t, 10000), loyalty.EarningContext("electronics", "purchase", nil))

	// Assert
	require.NoError(t, err)
	assert.True(t, points.IsZero())
	assert.Empty(t, engine.EarningRules())
}
