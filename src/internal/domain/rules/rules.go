// Package rules 實現可組合的積分規則引擎。
//
// 賺取規則（EarningRule）疊加計算：所有適用規則的積分相加。
// 兌換規則（RedemptionRule）首個匹配：按註冊順序取第一個可兌換的規則。
package rules

import (
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
)

// EarningRule 賺取規則介面
//
// 規則是無狀態的純計算：同樣的金額與上下文必須產生同樣的積分。
type EarningRule interface {
	// CalculatePoints 計算本規則對指定消費金額貢獻的積分
	CalculatePoints(amount loyalty.Money, context loyalty.TransactionContext) (loyalty.Points, error)

	// IsApplicable 判斷本規則是否適用於指定上下文
	IsApplicable(context loyalty.TransactionContext) bool

	// Priority 規則優先級（數值越大越先執行）
	Priority() int

	// Name 規則的唯一名稱
	Name() string

	// Description 規則的人類可讀描述
	Description() string
}

// RedemptionRule 兌換規則介面
//
// 兩個方法都接收交易上下文，讓規則可以依兌換情境（通路、活動）把關。
type RedemptionRule interface {
	// CalculateRedemptionValue 計算積分兌換的貨幣價值
	CalculateRedemptionValue(points loyalty.Points, context loyalty.TransactionContext) (loyalty.Money, error)

	// CanRedeem 判斷指定積分數量在該上下文中是否滿足兌換條件
	CanRedeem(points loyalty.Points, context loyalty.TransactionContext) bool

	// MinimumPoints 兌換所需的最低積分
	MinimumPoints() loyalty.Points

	// Name 規則的唯一名稱
	Name() string
}
