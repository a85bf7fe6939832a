package loyalty

// ===========================
// AccountStatus 枚舉
// ===========================

// AccountStatus 帳戶狀態
type AccountStatus string

// 帳戶狀態常量
const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
	StatusClosed    AccountStatus = "closed"
)

// ParseAccountStatus 從字串解析帳戶狀態（持久化重建用）
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch AccountStatus(s) {
	case StatusActive, StatusInactive, StatusSuspended, StatusClosed:
		return AccountStatus(s), nil
	default:
		return "", ErrInvalidStatus.WithContext("status", s)
	}
}

// IsActive 判斷是否為啟用狀態
func (s AccountStatus) IsActive() bool {
	return s == StatusActive
}

// CanEarnPoints 判斷此狀態是否允許賺取積分
// 業務規則：只有 Active 帳戶可以賺取
func (s AccountStatus) CanEarnPoints() bool {
	return s == StatusActive
}

// CanRedeemPoints 判斷此狀態是否允許兌換積分
// 業務規則：只有 Active 帳戶可以兌換
func (s AccountStatus) CanRedeemPoints() bool {
	return s == StatusActive
}

// String 實現 fmt.Stringer
func (s AccountStatus) String() string {
	return string(s)
}
