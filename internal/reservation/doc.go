// Package reservation は会議室の予約を作成・一覧・取消する予約サービスを提供する。
//
// 予約と利用者はStoreに保存され、作成と取消のたびにmailer.Notifierへ通知が送信される。
// Serviceは単一のミューテックスで一連のStore操作を直列化し、
// Storeへの変更を確定させてロックを解放した後に通知を送信する。
//
// エンドポイント:
//   - GET    /reservations     予約一覧
//   - POST   /reservations     予約作成
//   - DELETE /reservations/:id 予約取消
//   - GET    /mailer/outbox    送信済み通知一覧
//   - GET    /health           ヘルスチェック
package reservation
