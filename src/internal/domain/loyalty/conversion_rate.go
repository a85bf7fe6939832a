package loyalty

import (
	"fmt"
	"math"
)

// ===========================
// ConversionRate 值對象
// ===========================

// ConversionRate 轉換率值對象
//
// 語義：金額最小單位（分）到積分的乘數
// 例如 multiplier = 1.0 表示 1 分錢 → 1 積分（標準費率）
//
// 建構約束：乘數必須為正數
type ConversionRate struct {
	multiplier float64
}

// StandardRate 標準轉換率（1 分錢 = 1 積分）
func StandardRate() ConversionRate {
	return ConversionRate{multiplier: 1.0}
}

// RateFromMultiplier 從乘數建構轉換率
func RateFromMultiplier(multiplier float64) (ConversionRate, error) {
	if multiplier <= 0 {
		return ConversionRate{}, ErrInvalidConversionRate.WithContext(
			"multiplier", multiplier,
		)
	}
	return ConversionRate{multiplier: multiplier}, nil
}

// RateFromRatio 從（分, 積分）比例推導轉換率
//
// 範例：RateFromRatio(200, 1) → 每 200 分錢換 1 積分（multiplier = 0.005）
func RateFromRatio(cents int, points int) (ConversionRate, error) {
	if cents <= 0 || points <= 0 {
		return ConversionRate{}, ErrInvalidConversionRate.WithContext(
			"cents", cents,
			"points", points,
			"reason", "both cents and points must be positive",
		)
	}
	return ConversionRate{multiplier: float64(points) / float64(cents)}, nil
}

// Multiplier 獲取乘數
func (r ConversionRate) Multiplier() float64 {
	return r.multiplier
}

// Inverse 反轉轉換率（積分 → 分）
//
// 不變條件保證：multiplier > 0，因此倒數必然有效
func (r ConversionRate) Inverse() ConversionRate {
	return ConversionRate{multiplier: 1.0 / r.multiplier}
}

// Equals 比較兩個轉換率是否相等（容差 0.001）
func (r ConversionRate) Equals(other ConversionRate) bool {
	return math.Abs(r.multiplier-other.multiplier) < 0.001
}

// String 實現 fmt.Stringer
func (r ConversionRate) String() string {
	return fmt.Sprintf("x%g", r.multiplier)
}
