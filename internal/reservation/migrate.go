package reservation

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

// gooseはパッケージ変数で設定を保持するため、適用処理を直列化する。
var gooseMu sync.Mutex

// migrate はembedされたマイグレーションのうち未適用のものを適用する。
// dialectはgooseの方言名、dirはmigrations配下のディレクトリ。
func migrate(db *sql.DB, dialect, dir string, logger *slog.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{logger: logger})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("マイグレーション方言の設定に失敗: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("マイグレーションの適用に失敗: %w", err)
	}
	return nil
}

// gooseLogger はgooseのログ出力をslogへ流す。
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migration")
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migration")
	os.Exit(1)
}
