package loyalty

import "fmt"

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	// 積分數量相關
	ErrCodeNegativePoints     ErrorCode = "POINTS_NEGATIVE"
	ErrCodeInsufficientPoints ErrorCode = "POINTS_INSUFFICIENT"
	ErrCodeInvalidMultiplier  ErrorCode = "POINTS_INVALID_MULTIPLIER"
	ErrCodeInvalidDivisor     ErrorCode = "POINTS_INVALID_DIVISOR"
	ErrCodeInvalidPercentage  ErrorCode = "POINTS_INVALID_PERCENTAGE"

	// 金額相關
	ErrCodeNegativeMoney       ErrorCode = "MONEY_NEGATIVE"
	ErrCodeCurrencyMismatch    ErrorCode = "CURRENCY_MISMATCH"
	ErrCodeUnsupportedCurrency ErrorCode = "CURRENCY_UNSUPPORTED"

	// 轉換率相關
	ErrCodeInvalidConversionRate ErrorCode = "CONVERSION_RATE_INVALID"

	// 識別符相關
	ErrCodeInvalidAccountID     ErrorCode = "ACCOUNT_ID_INVALID"
	ErrCodeInvalidCustomerID    ErrorCode = "CUSTOMER_ID_INVALID"
	ErrCodeInvalidTransactionID ErrorCode = "TRANSACTION_ID_INVALID"

	// 交易類型相關
	ErrCodeInvalidTransactionType ErrorCode = "TRANSACTION_TYPE_INVALID"

	// 帳戶狀態相關
	ErrCodeInactiveAccount       ErrorCode = "ACCOUNT_INACTIVE"
	ErrCodeConfirmExceedsPending ErrorCode = "CONFIRM_EXCEEDS_PENDING"
	ErrCodeCorruptedBalance      ErrorCode = "BALANCE_CORRUPTED"
	ErrCodeInvalidStatus         ErrorCode = "STATUS_INVALID"

	// 兌換與風控相關（Application Layer 使用）
	ErrCodeRedemptionNotAllowed ErrorCode = "REDEMPTION_NOT_ALLOWED"
	ErrCodeFraudDetected        ErrorCode = "FRAUD_DETECTED"

	// Repository 相關
	ErrCodeAccountNotFound      ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeAccountAlreadyExists ErrorCode = "ACCOUNT_ALREADY_EXISTS"
	ErrCodeTransactionNotFound  ErrorCode = "TRANSACTION_NOT_FOUND"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
// 設計原則：
// 1. 包含結構化的錯誤代碼（用於 HTTP 狀態碼映射）
// 2. 支持上下文信息（用於調試和日誌）
// 3. 不可變性（創建後不可修改）
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例，保持不可變性）
//
// 業務要求：guard 失敗時必須攜帶違規數量
// 例如 ErrInsufficientPoints.WithContext("required", 100, "available", 50)
// 讓調用方能組出精確的用戶訊息（"required X, available Y"）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)

	// 複製現有上下文
	for k, v := range e.Context {
		ctx[k] = v
	}

	// 添加新上下文
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（用於錯誤類型判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError 創建領域錯誤
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ===========================
// 預定義錯誤
// ===========================

// 積分數量相關錯誤
var (
	ErrNegativePoints = &DomainError{
		Code:    ErrCodeNegativePoints,
		Message: "積分數量不能為負數",
	}

	ErrInsufficientPoints = &DomainError{
		Code:    ErrCodeInsufficientPoints,
		Message: "積分餘額不足",
	}

	ErrInvalidMultiplier = &DomainError{
		Code:    ErrCodeInvalidMultiplier,
		Message: "乘數不能為負數",
	}

	ErrInvalidDivisor = &DomainError{
		Code:    ErrCodeInvalidDivisor,
		Message: "除數必須為正數",
	}

	ErrInvalidPercentage = &DomainError{
		Code:    ErrCodeInvalidPercentage,
		Message: "百分比必須在 0-100 之間",
	}
)

// 金額相關錯誤
var (
	ErrNegativeMoney = &DomainError{
		Code:    ErrCodeNegativeMoney,
		Message: "金額不能為負數",
	}

	ErrCurrencyMismatch = &DomainError{
		Code:    ErrCodeCurrencyMismatch,
		Message: "不同幣別之間不能運算",
	}

	ErrUnsupportedCurrency = &DomainError{
		Code:    ErrCodeUnsupportedCurrency,
		Message: "不支援的幣別代碼",
	}
)

// 轉換率相關錯誤
var (
	ErrInvalidConversionRate = &DomainError{
		Code:    ErrCodeInvalidConversionRate,
		Message: "轉換率必須為正數",
	}
)

// 識別符相關錯誤
var (
	ErrInvalidAccountID = &DomainError{
		Code:    ErrCodeInvalidAccountID,
		Message: "無效的帳戶 ID",
	}

	ErrInvalidCustomerID = &DomainError{
		Code:    ErrCodeInvalidCustomerID,
		Message: "無效的客戶 ID",
	}

	ErrInvalidTransactionID = &DomainError{
		Code:    ErrCodeInvalidTransactionID,
		Message: "無效的交易 ID",
	}

	ErrInvalidTransactionType = &DomainError{
		Code:    ErrCodeInvalidTransactionType,
		Message: "無效的交易類型",
	}
)

// 帳戶狀態相關錯誤
var (
	// ErrInactiveAccount 非 Active 帳戶不允許變更操作
	// 永遠向調用者傳播，不自動重試
	ErrInactiveAccount = &DomainError{
		Code:    ErrCodeInactiveAccount,
		Message: "帳戶非啟用狀態，不允許此操作",
	}

	// ErrConfirmExceedsPending 確認數量超過待確認積分
	ErrConfirmExceedsPending = &DomainError{
		Code:    ErrCodeConfirmExceedsPending,
		Message: "確認數量不能超過待確認積分",
	}

	// ErrCorruptedBalance 持久化資料重建時餘額驗證失敗（資料損壞）
	ErrCorruptedBalance = &DomainError{
		Code:    ErrCodeCorruptedBalance,
		Message: "帳戶餘額資料損壞",
	}

	// ErrInvalidStatus 未知的帳戶狀態值
	ErrInvalidStatus = &DomainError{
		Code:    ErrCodeInvalidStatus,
		Message: "無效的帳戶狀態",
	}
)

// 兌換與風控相關錯誤
var (
	// ErrRedemptionNotAllowed 沒有任何兌換規則允許此次兌換
	// 注意：Engine.CalculateRedemption 以 (zero, false) 表達「無價值」，
	// 不是錯誤；此錯誤由編排層在 CanRedeem() == false 時使用（硬拒絕）
	ErrRedemptionNotAllowed = &DomainError{
		Code:    ErrCodeRedemptionNotAllowed,
		Message: "目前規則不允許此次兌換",
	}

	// ErrFraudDetected 風控攔截（分數 >= 阻擋閾值）
	ErrFraudDetected = &DomainError{
		Code:    ErrCodeFraudDetected,
		Message: "交易因風控檢測被攔截",
	}
)
