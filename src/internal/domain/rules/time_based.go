package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// 規則名稱中的時間窗格式（精確到分鐘）
const timeWindowFormat = "2006-01-02 15:04"

// TimeBasedRule 限時活動規則
//
// 在指定時間窗內（可選擇限定星期幾）套用乘數。
// 判斷依據是上下文的 timestamp，不是系統當前時間，
// 因此延遲處理的交易仍按發生時刻計算。
type TimeBasedRule struct {
	startTime   time.Time
	endTime     time.Time
	multiplier  float64
	rate        loyalty.ConversionRate
	allowedDays []string
	priority    int
}

// NewTimeBasedRule 創建限時活動規則
//
// allowedDays 為小寫英文星期名（例如 "saturday"）。空切片代表每天適用。
func NewTimeBasedRule(
	startTime time.Time,
	endTime time.Time,
	multiplier float64,
	rate loyalty.ConversionRate,
	allowedDays []string,
) *TimeBasedRule {
	days := make([]string, len(allowedDays))
	for i, day := range allowedDays {
		days[i] = strings.ToLower(strings.TrimSpace(day))
	}

	return &TimeBasedRule{
		startTime:   startTime,
		endTime:     endTime,
		multiplier:  multiplier,
		rate:        rate,
		allowedDays: days,
		priority:    150,
	}
}

// CalculatePoints 計算積分：基礎積分 × 活動乘數
func (r *TimeBasedRule) CalculatePoints(amount loyalty.Money, context loyalty.TransactionContext) (loyalty.Points, error) {
	basePoints := amount.ConvertToPoints(r.rate)
	return basePoints.Multiply(r.multiplier)
}

// IsApplicable 上下文時間落在活動窗內且在允許的星期時適用
func (r *TimeBasedRule) IsApplicable(context loyalty.TransactionContext) bool {
	timestamp := context.Timestamp()
	if timestamp.Before(r.startTime) || timestamp.After(r.endTime) {
		return false
	}
	return r.isAllowedDay(timestamp)
}

func (r *TimeBasedRule) isAllowedDay(timestamp time.Time) bool {
	if len(r.allowedDays) == 0 {
		return true
	}

	weekday := strings.ToLower(timestamp.Weekday().String())
	for _, day := range r.allowedDays {
		if day == weekday {
			return true
		}
	}
	return false
}

// Priority 獲取優先級
func (r *TimeBasedRule) Priority() int {
	return r.priority
}

// Name 獲取規則名稱
func (r *TimeBasedRule) Name() string {
	return fmt.Sprintf("time_based_%s_%s",
		r.startTime.Format(timeWindowFormat),
		r.endTime.Format(timeWindowFormat),
	)
}

// Description 獲取規則描述
func (r *TimeBasedRule) Description() string {
	return fmt.Sprintf("%s 至 %s 期間積分 %.1f 倍",
		r.startTime.Format(timeWindowFormat),
		r.endTime.Format(timeWindowFormat),
		r.multiplier,
	)
}
