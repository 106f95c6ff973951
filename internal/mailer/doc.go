// Package mailer は予約の作成・取消を利用者へ知らせる通知機能を提供する。
//
// 送信した通知はアウトボックスに送信順で追記され、後から一覧として参照できる。
// アウトボックスは追記のみで、削除や並べ替えは行わない。
// WebhookMailerを使うと、アウトボックスへの追記に加えて外部のHTTPエンドポイントへ
// 通知イベントを転送する。
package mailer
