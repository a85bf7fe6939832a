package loyalty

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ===========================
// Points 值對象
// ===========================

// Points 積分數量值對象
//
// 設計原則：值對象不可變、自我驗證
//
// 建構約束：積分數量必須 >= 0（不存在負數積分的概念）
// 所有運算對非負整數封閉；減到負數是錯誤而非截斷，
// 乘除法使用四捨五入（round half away from zero）取整
type Points struct {
	value int
}

// NewPoints 建構函數（checked 版本）
// 對外部輸入進行完整驗證
func NewPoints(value int) (Points, error) {
	if value < 0 {
		return Points{}, fmt.Errorf(
			"%w: attempted to create Points with value %d",
			ErrNegativePoints,
			value,
		)
	}
	return Points{value: value}, nil
}

// newPointsUnchecked 內部建構函數（unchecked 版本）
// 僅供內部使用，當我們確定值有效時使用（性能優化）
//
// 前提條件：調用者必須保證 value >= 0
func newPointsUnchecked(value int) Points {
	return Points{value: value}
}

// ZeroPoints 零積分
func ZeroPoints() Points {
	return Points{value: 0}
}

// Value 獲取積分數量
func (p Points) Value() int {
	return p.value
}

// Add 相加（返回新的 Points，保持不變性）
//
// 設計假設：
// 生產系統中積分受業務規則限制，整數溢位在實際業務場景中不會發生。
// 如需處理任意大的積分數量，應在聚合根層面強制上限
func (p Points) Add(other Points) Points {
	return newPointsUnchecked(p.value + other.value)
}

// Subtract 相減（返回新的 Points）
// 業務規則：不能扣除超過當前數量的積分
func (p Points) Subtract(other Points) (Points, error) {
	// 檢查業務規則：餘額是否足夠
	if p.value < other.value {
		// 這是業務規則違反，不是建構約束違反
		return Points{}, fmt.Errorf(
			"%w: cannot subtract %d from %d (insufficient balance)",
			ErrInsufficientPoints,
			other.value,
			p.value,
		)
	}

	// 已經保證 result >= 0，可以安全使用 unchecked 建構
	return newPointsUnchecked(p.value - other.value), nil
}

// Multiply 乘以倍率，結果四捨五入取整
//
// 業務規則：倍率不能為負數（負倍率沒有業務意義）
// 使用 decimal 進行精確計算，避免浮點誤差
func (p Points) Multiply(multiplier float64) (Points, error) {
	if multiplier < 0 {
		return Points{}, ErrInvalidMultiplier.WithContext(
			"multiplier", multiplier,
		)
	}

	result := decimal.NewFromInt(int64(p.value)).
		Mul(decimal.NewFromFloat(multiplier)).
		Round(0).
		IntPart()

	return newPointsUnchecked(int(result)), nil
}

// Divide 除以除數，結果四捨五入取整
//
// 業務規則：除數必須為正數
func (p Points) Divide(divisor float64) (Points, error) {
	if divisor <= 0 {
		return Points{}, ErrInvalidDivisor.WithContext(
			"divisor", divisor,
		)
	}

	result := decimal.NewFromInt(int64(p.value)).
		Div(decimal.NewFromFloat(divisor)).
		Round(0).
		IntPart()

	return newPointsUnchecked(int(result)), nil
}

// Percentage 取百分比，結果四捨五入取整
//
// 業務規則：百分比必須在 [0, 100] 之間
func (p Points) Percentage(percentage float64) (Points, error) {
	if percentage < 0 || percentage > 100 {
		return Points{}, ErrInvalidPercentage.WithContext(
			"percentage", percentage,
		)
	}

	result := decimal.NewFromInt(int64(p.value)).
		Mul(decimal.NewFromFloat(percentage)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	return newPointsUnchecked(int(result)), nil
}

// Equals 比較兩個 Points 是否相等
func (p Points) Equals(other Points) bool {
	return p.value == other.value
}

// GreaterThan 判斷是否大於另一個 Points
func (p Points) GreaterThan(other Points) bool {
	return p.value > other.value
}

// GreaterThanOrEqual 判斷是否大於等於另一個 Points
func (p Points) GreaterThanOrEqual(other Points) bool {
	return p.value >= other.value
}

// LessThan 判斷是否小於另一個 Points
func (p Points) LessThan(other Points) bool {
	return p.value < other.value
}

// IsZero 判斷是否為零積分
func (p Points) IsZero() bool {
	return p.value == 0
}

// String 實現 fmt.Stringer
func (p Points) String() string {
	return strconv.Itoa(p.value) + " points"
}

// MarshalJSON 序列化為整數
func (p Points) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(p.value)), nil
}
