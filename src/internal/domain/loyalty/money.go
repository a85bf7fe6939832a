package loyalty

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ===========================
// Money 值對象
// ===========================

// Money 金額值對象
//
// 設計原則：
// 1. 金額以最小幣別單位（分）的非負整數儲存，避免浮點誤差
// 2. 所有運算要求幣別一致（ErrCurrencyMismatch）
// 3. 減到負數是錯誤而非截斷
// 4. 乘除法使用 decimal 四捨五入取整（與 Points 一致的數值策略）
type Money struct {
	amount   int // 最小幣別單位（分）
	currency Currency
}

// NewMoney 建構函數（checked 版本）
//
// 建構約束：金額必須 >= 0
func NewMoney(amount int, currency Currency) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeMoney.WithContext(
			"amount", amount,
			"currency", currency.Code(),
		)
	}
	return Money{amount: amount, currency: currency}, nil
}

// newMoneyUnchecked 內部建構函數（unchecked 版本）
// 前提條件：調用者必須保證 amount >= 0
func newMoneyUnchecked(amount int, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// ZeroMoney 零金額
func ZeroMoney(currency Currency) Money {
	return Money{amount: 0, currency: currency}
}

// MoneyFromCents 從最小單位（分）建構金額
func MoneyFromCents(cents int, currency Currency) (Money, error) {
	return NewMoney(cents, currency)
}

// MoneyFromDollars 從主單位建構金額（乘以 100 後四捨五入）
//
// 範例：MoneyFromDollars(99.99, USD()) → 9999 分
func MoneyFromDollars(dollars float64, currency Currency) (Money, error) {
	cents := decimal.NewFromFloat(dollars).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	return NewMoney(int(cents), currency)
}

// Amount 獲取最小單位金額（分）
func (m Money) Amount() int {
	return m.amount
}

// Currency 獲取幣別
func (m Money) Currency() Currency {
	return m.currency
}

// ToDollars 轉換為主單位金額
func (m Money) ToDollars() float64 {
	return float64(m.amount) / 100
}

// Add 相加（返回新的 Money）
// 業務規則：幣別必須一致
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return newMoneyUnchecked(m.amount+other.amount, m.currency), nil
}

// Subtract 相減（返回新的 Money）
// 業務規則：幣別必須一致，且不能減到負數
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}

	if m.amount < other.amount {
		return Money{}, ErrNegativeMoney.WithContext(
			"minuend", m.amount,
			"subtrahend", other.amount,
			"currency", m.currency.Code(),
		)
	}

	return newMoneyUnchecked(m.amount-other.amount, m.currency), nil
}

// Multiply 乘以倍率，結果四捨五入取整
func (m Money) Multiply(multiplier float64) (Money, error) {
	if multiplier < 0 {
		return Money{}, ErrInvalidMultiplier.WithContext(
			"multiplier", multiplier,
		)
	}

	result := decimal.NewFromInt(int64(m.amount)).
		Mul(decimal.NewFromFloat(multiplier)).
		Round(0).
		IntPart()

	return newMoneyUnchecked(int(result), m.currency), nil
}

// Divide 除以除數，結果四捨五入取整
func (m Money) Divide(divisor float64) (Money, error) {
	if divisor <= 0 {
		return Money{}, ErrInvalidDivisor.WithContext(
			"divisor", divisor,
		)
	}

	result := decimal.NewFromInt(int64(m.amount)).
		Div(decimal.NewFromFloat(divisor)).
		Round(0).
		IntPart()

	return newMoneyUnchecked(int(result), m.currency), nil
}

// Percentage 取百分比，結果四捨五入取整
func (m Money) Percentage(percentage float64) (Money, error) {
	if percentage < 0 || percentage > 100 {
		return Money{}, ErrInvalidPercentage.WithContext(
			"percentage", percentage,
		)
	}

	result := decimal.NewFromInt(int64(m.amount)).
		Mul(decimal.NewFromFloat(percentage)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	return newMoneyUnchecked(int(result), m.currency), nil
}

// ConvertToPoints 根據轉換率將金額換算為積分
//
// 業務規則：積分 = round(最小單位金額 × 轉換率乘數)
// 使用 decimal 確保精確計算
//
// 不變條件保證：amount >= 0 且 multiplier > 0，結果必然 >= 0
func (m Money) ConvertToPoints(rate ConversionRate) Points {
	points := decimal.NewFromInt(int64(m.amount)).
		Mul(decimal.NewFromFloat(rate.Multiplier())).
		Round(0).
		IntPart()

	return newPointsUnchecked(int(points))
}

// Equals 比較兩個 Money 是否相等（金額與幣別皆相同）
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency.Equals(other.currency)
}

// GreaterThan 判斷是否大於另一個 Money
// 業務規則：幣別必須一致
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount > other.amount, nil
}

// GreaterThanOrEqual 判斷是否大於等於另一個 Money
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount >= other.amount, nil
}

// LessThan 判斷是否小於另一個 Money
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount < other.amount, nil
}

// IsZero 判斷是否為零金額
func (m Money) IsZero() bool {
	return m.amount == 0
}

// assertSameCurrency 幣別一致性檢查（私有輔助方法）
func (m Money) assertSameCurrency(other Money) error {
	if !m.currency.Equals(other.currency) {
		return ErrCurrencyMismatch.WithContext(
			"left", m.currency.Code(),
			"right", other.currency.Code(),
		)
	}
	return nil
}

// String 實現 fmt.Stringer（帶幣別符號）
func (m Money) String() string {
	return m.currency.Format(m.ToDollars())
}

// MarshalJSON 序列化為結構化金額信息
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"amount_cents":   m.amount,
		"amount_dollars": m.ToDollars(),
		"currency":       m.currency.Code(),
		"formatted":      m.String(),
	})
}
