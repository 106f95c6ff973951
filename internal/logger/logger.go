// Package logger はslogをラップしたアプリケーションロガーを提供する。
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger はアプリケーション全体で使用するロガー。
type Logger struct {
	*slog.Logger
}

// New は指定レベルで標準出力に書き出すLoggerを生成する。
// levelはslog.Levelの整数値（-4: DEBUG, 0: INFO, 4: WARN, 8: ERROR）。
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// NewNop は何も出力しないLoggerを生成する。テストで使用する。
func NewNop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}

// Fatal はErrorレベルで出力した後にos.Exit(1)する。
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
