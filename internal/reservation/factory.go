package reservation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/roombook/internal/config"
)

// NewStore は設定に応じたバックエンドのStoreを生成する。
func NewStore(ctx context.Context, cfg config.Store, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		s, err := NewSQLiteStore(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := NewPostgresStore(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("未対応のストアドライバです: %q", cfg.Driver)
}
