package shared

// TransactionContext 資料庫事務上下文介面
//
// 設計決策：可選事務參與模式（Optional Transaction Participation）
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行（事務傳播）
// - ctx == nil: 使用 auto-commit 模式（適用於單一讀操作）
//
// Repository 方法約束指南：
//
// ✅ ctx 必須為 non-nil（寫操作需要事務保證）：
//    - Save()   - 創建新記錄
//    - Update() - 更新現有記錄
//    - Delete() - 刪除記錄
//
// ✅ ctx 可為 nil（讀操作可選事務參與）：
//    - FindByID()         - 根據 ID 查詢
//    - FindByCustomerID() - 根據 CustomerID 查詢
//
// 範例（賺取積分的寫路徑）：
//
//   txManager.InTransaction(func(ctx TransactionContext) error {
//       account, _ := accounts.FindByCustomerID(ctx, customerID)
//       tx, err := account.EarnPoints(points, earnCtx)
//       if err != nil {
//           return err
//       }
//       if err := transactions.Save(ctx, tx); err != nil {
//           return err
//       }
//       return accounts.Update(ctx, account)
//   })
//
// 架構原則：
// - 這是一個標記介面（Marker Interface），不暴露任何方法
// - Infrastructure Layer 負責實作具體的事務封裝（如 GORM）
// - Domain Layer 和 Application Layer 只依賴此介面，不依賴具體實作
// - 保持依賴方向：Infrastructure → Domain（依賴倒置原則）
//
// 注意：此介面與 loyalty.TransactionContext（規則評估上下文）無關，
// 兩者名稱相同但職責完全不同：此處是資料庫事務邊界的封裝
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// 行為保證（由 Infrastructure 實作維護）：
// - fn 返回 nil：提交事務
// - fn 返回 error：回滾事務，原始錯誤向上傳播
// - fn panic：回滾事務後重新拋出 panic
//
// 並發契約：
// 同一帳戶的變更操作必須序列化（single-writer-per-account）。
// 聚合根內部不做鎖定；guard → compute → mutate 的順序檢查
// 只有在「同一帳戶同時最多一個進行中變更」的前提下才是安全的。
// 此保證由宿主服務層提供（每帳戶鎖、儲存層樂觀版本檢查或命令佇列）
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
