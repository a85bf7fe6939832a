package loyalty

// ===========================
// TransactionType 枚舉
// ===========================

// TransactionType 積分交易類型
type TransactionType string

// 交易類型常量
const (
	TransactionEarn       TransactionType = "earn"
	TransactionRedeem     TransactionType = "redeem"
	TransactionExpire     TransactionType = "expire"
	TransactionRefund     TransactionType = "refund"
	TransactionAdjustment TransactionType = "adjustment"
)

// ParseTransactionType 從字串解析交易類型（持久化重建用）
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionEarn, TransactionRedeem, TransactionExpire,
		TransactionRefund, TransactionAdjustment:
		return TransactionType(s), nil
	default:
		return "", ErrInvalidTransactionType.WithContext("type", s)
	}
}

// IsEarning 判斷是否為積分流入類型
func (t TransactionType) IsEarning() bool {
	return t == TransactionEarn || t == TransactionRefund
}

// IsSpending 判斷是否為積分流出類型
func (t TransactionType) IsSpending() bool {
	return t == TransactionRedeem || t == TransactionExpire || t == TransactionAdjustment
}

// Description 獲取人類可讀描述
func (t TransactionType) Description() string {
	switch t {
	case TransactionEarn:
		return "Points Earned"
	case TransactionRedeem:
		return "Points Redeemed"
	case TransactionExpire:
		return "Points Expired"
	case TransactionRefund:
		return "Points Refunded"
	case TransactionAdjustment:
		return "Points Adjustment"
	default:
		return string(t)
	}
}

// String 實現 fmt.Stringer
func (t TransactionType) String() string {
	return string(t)
}
