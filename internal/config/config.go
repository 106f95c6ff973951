// Package config は環境変数から予約サービスの設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ストアのバックエンド種別。
const (
	// DriverMemory はプロセス内メモリのストア。
	DriverMemory = "memory"
	// DriverSQLite はSQLiteファイル（または :memory:）のストア。
	DriverSQLite = "sqlite"
	// DriverPostgres はPostgreSQLのストア。
	DriverPostgres = "postgres"
)

// 予約IDの採番方式。
const (
	// IDStrategySequence は削除済みIDを再利用しない単調増加の採番。
	IDStrategySequence = "sequence"
	// IDStrategyCount は「現在の予約件数+1」による採番。削除後にIDが再利用される。
	IDStrategyCount = "count"
)

// Config は予約サービス全体の設定。
type Config struct {
	LogLevel    int         `env:"LOG_LEVEL" envDefault:"0"`
	HTTP        HTTP        `envPrefix:"HTTP_"`
	Store       Store       `envPrefix:"STORE_"`
	Reservation Reservation `envPrefix:"RESERVATION_"`
	Mailer      Mailer      `envPrefix:"MAILER_"`
	Auth        Auth        `envPrefix:"AUTH_"`
	CORS        CORS        `envPrefix:"CORS_"`
}

// HTTP はHTTPサーバーの設定。
type HTTP struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Store はストアの接続設定。
type Store struct {
	Driver      string `env:"DRIVER" envDefault:"memory"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"reservation.db"`
	PostgresDSN string `env:"POSTGRES_DSN"`
}

// Reservation は予約処理の設定。
type Reservation struct {
	IDStrategy string `env:"ID_STRATEGY" envDefault:"sequence"`
}

// Mailer は通知転送の設定。WebhookURLが空の場合は転送しない。
type Mailer struct {
	WebhookURL     string        `env:"WEBHOOK_URL"`
	WebhookTimeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
}

// Auth は認証の設定。JWTSecretが空の場合は認証を行わない。
type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

// CORS はクロスオリジン設定。
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// NewConfig は環境変数から設定を読み込み、検証して返す。
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は設定値の組み合わせを検証する。
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("STORE_POSTGRES_DSN が未設定です")
		}
	default:
		return fmt.Errorf("未対応のストアドライバです: %q", c.Store.Driver)
	}

	switch c.Reservation.IDStrategy {
	case IDStrategySequence, IDStrategyCount:
	default:
		return fmt.Errorf("未対応のID採番方式です: %q", c.Reservation.IDStrategy)
	}
	return nil
}
