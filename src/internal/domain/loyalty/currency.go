package loyalty

import (
	"fmt"
	"strings"
)

// ===========================
// Currency 值對象
// ===========================

// currencyInfo 幣別元數據
type currencyInfo struct {
	symbol   string
	name     string
	decimals int
}

// supportedCurrencies 支援的幣別集合（固定枚舉）
//
// 業務規則：
// - 幣別集合在編譯期固定，不支援動態註冊
// - JPY 沒有小數位（最小單位即日圓）
var supportedCurrencies = map[string]currencyInfo{
	"USD": {symbol: "$", name: "US Dollar", decimals: 2},
	"EUR": {symbol: "€", name: "Euro", decimals: 2},
	"GBP": {symbol: "£", name: "British Pound", decimals: 2},
	"CAD": {symbol: "C$", name: "Canadian Dollar", decimals: 2},
	"AUD": {symbol: "A$", name: "Australian Dollar", decimals: 2},
	"JPY": {symbol: "¥", name: "Japanese Yen", decimals: 0},
	"NGN": {symbol: "₦", name: "Nigerian Naira", decimals: 2},
}

// Currency 幣別值對象
// 設計原則：值對象不可變、自我驗證；相等性以代碼比較
type Currency struct {
	code string
}

// NewCurrency 建構函數（checked 版本）
//
// 建構約束：
// - 代碼修剪空白並轉大寫後必須為 3 個字元
// - 必須在支援的幣別集合內
func NewCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	if len(normalized) != 3 {
		return Currency{}, ErrUnsupportedCurrency.WithContext(
			"code", code,
			"reason", "currency code must be 3 characters",
		)
	}

	if _, ok := supportedCurrencies[normalized]; !ok {
		return Currency{}, ErrUnsupportedCurrency.WithContext(
			"code", normalized,
		)
	}

	return Currency{code: normalized}, nil
}

// 常用幣別工廠方法
// 代碼為編譯期常量，保證有效，直接建構

// USD 美元
func USD() Currency { return Currency{code: "USD"} }

// EUR 歐元
func EUR() Currency { return Currency{code: "EUR"} }

// GBP 英鎊
func GBP() Currency { return Currency{code: "GBP"} }

// JPY 日圓
func JPY() Currency { return Currency{code: "JPY"} }

// NGN 奈拉
func NGN() Currency { return Currency{code: "NGN"} }

// SupportedCurrencies 列出所有支援的幣別代碼
func SupportedCurrencies() []string {
	codes := make([]string, 0, len(supportedCurrencies))
	for code := range supportedCurrencies {
		codes = append(codes, code)
	}
	return codes
}

// Code 獲取幣別代碼
func (c Currency) Code() string {
	return c.code
}

// Name 獲取幣別名稱
func (c Currency) Name() string {
	return supportedCurrencies[c.code].name
}

// Symbol 獲取顯示符號
func (c Currency) Symbol() string {
	return supportedCurrencies[c.code].symbol
}

// Decimals 獲取小數位數（JPY 為 0，其餘為 2）
func (c Currency) Decimals() int {
	return supportedCurrencies[c.code].decimals
}

// Equals 比較兩個幣別是否相等（以代碼比較）
func (c Currency) Equals(other Currency) bool {
	return c.code == other.code
}

// Format 將主單位金額格式化為帶符號的顯示字串
//
// 範例：USD().Format(99.99) → "$99.99"、JPY().Format(500) → "¥500"
func (c Currency) Format(amount float64) string {
	info := supportedCurrencies[c.code]
	return info.symbol + fmt.Sprintf("%.*f", info.decimals, amount)
}

// String 實現 fmt.Stringer
func (c Currency) String() string {
	return c.code
}

// MarshalJSON 序列化為幣別代碼字串
func (c Currency) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.code + `"`), nil
}
