package loyalty

import (
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/loyalty_rewards/src/internal/domain/shared"
)

// dispatchEvents 發布聚合緩衝的領域事件並清空緩衝。
//
// 必須在事務提交成功後呼叫：事件代表已持久化的事實。
// 發布失敗不回滾業務操作，由 publisher 實作自行記錄。
func dispatchEvents(publisher shared.EventPublisher, account *loyalty.LoyaltyAccount) {
	events := account.Events()
	if len(events) == 0 {
		return
	}

	_ = publisher.PublishBatch(events)
	account.ClearEvents()
}
