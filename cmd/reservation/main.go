// 予約サービスのエントリポイント。
// 会議室予約の作成・一覧・取消と、送信済み通知の参照を提供する。
// 設定はすべて環境変数から読み込む。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/roombook/internal/config"
	"github.com/nao1215/roombook/internal/logger"
	"github.com/nao1215/roombook/internal/mailer"
	"github.com/nao1215/roombook/internal/reservation"
	"github.com/nao1215/roombook/pkg/httpclient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.New(0).Fatal("設定の読み込みに失敗", "error", err)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(ctx, cfg, log); err != nil {
		stop()
		log.Fatal("予約サービスが異常終了", "error", err)
	}
	log.Info("予約サービスを停止しました")
}

// run は依存を組み立ててサーバーを起動し、ctxがキャンセルされるまでブロックする。
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	store, err := reservation.NewStore(ctx, cfg.Store, log.Logger)
	if err != nil {
		return fmt.Errorf("ストアの初期化に失敗: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("ストアのクローズに失敗", "error", err)
		}
	}()

	var notifier mailer.Notifier = mailer.NewMemoryMailer()
	if cfg.Mailer.WebhookURL != "" {
		client := httpclient.New(cfg.Mailer.WebhookURL, httpclient.WithTimeout(cfg.Mailer.WebhookTimeout))
		notifier = mailer.NewWebhookMailer(notifier, client, log.Logger)
		log.Info("通知イベントの転送を有効化", "url", cfg.Mailer.WebhookURL)
	}

	service := reservation.NewService(store, notifier, cfg.Reservation.IDStrategy, log.Logger)
	server := reservation.NewServer(cfg, service, log.Logger)

	log.Info("予約サービスを起動します",
		"port", cfg.HTTP.Port,
		"driver", cfg.Store.Driver,
		"id_strategy", cfg.Reservation.IDStrategy,
	)
	return server.Run(ctx)
}
