package mailer

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/nao1215/roombook/pkg/event"
	"github.com/nao1215/roombook/pkg/httpclient"
)

// webhookPath は通知イベントの転送先パス。
const webhookPath = "/events"

// WebhookMailer は内側のNotifierに通知を追記したうえで、
// 通知イベントを外部のHTTPエンドポイントへ転送するNotifier。
// 転送に失敗してもアウトボックスと予約処理には影響させず、ログ出力のみ行う。
type WebhookMailer struct {
	// next は実際にアウトボックスを保持するNotifier。
	next Notifier
	// client は転送先へのHTTPクライアント。
	client *httpclient.Client
	// logger は転送失敗を記録するロガー。
	logger *slog.Logger
	// seq は転送イベントのバージョンに使う通し番号。
	seq atomic.Int64
}

var _ Notifier = (*WebhookMailer)(nil)

// NewWebhookMailer は新しいWebhookMailerを生成する。
func NewWebhookMailer(next Notifier, client *httpclient.Client, logger *slog.Logger) *WebhookMailer {
	return &WebhookMailer{next: next, client: client, logger: logger}
}

// Send は通知をアウトボックスに追記し、イベントとして転送する。
func (w *WebhookMailer) Send(ctx context.Context, msg Message) {
	w.next.Send(ctx, msg)

	version := w.seq.Add(1)
	ev, err := event.NewMessage(event.TypeForKind(string(msg.Kind)), version, event.MessageData{
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	if err != nil {
		w.logger.Error("通知イベントの生成に失敗", "error", err, "kind", msg.Kind)
		return
	}

	if err := w.client.PostJSON(ctx, webhookPath, ev, nil); err != nil {
		w.logger.Error("通知イベントの転送に失敗",
			"error", err,
			"event_id", ev.ID,
			"event_type", ev.EventType,
		)
		return
	}
	w.logger.Debug("通知イベントを転送", "event_id", ev.ID, "event_type", ev.EventType)
}

// Outbox は内側のNotifierのアウトボックスを返す。
func (w *WebhookMailer) Outbox() []Message {
	return w.next.Outbox()
}
