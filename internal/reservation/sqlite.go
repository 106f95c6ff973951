package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// sqliteMemoryPath はインメモリSQLiteを表すパス。
const sqliteMemoryPath = ":memory:"

// SQLiteが使用するクエリ。
const (
	sqliteListReservations  = `SELECT id, email, room FROM reservations ORDER BY id`
	sqliteGetReservation    = `SELECT id, email, room FROM reservations WHERE id = ?`
	sqliteSaveReservation   = `INSERT INTO reservations (id, email, room) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET email = excluded.email, room = excluded.room`
	sqliteDeleteReservation = `DELETE FROM reservations WHERE id = ?`
	sqliteGetUser           = `SELECT name, email FROM users WHERE email = ?`
	sqliteSaveUser          = `INSERT INTO users (email, name) VALUES (?, ?) ON CONFLICT(email) DO UPDATE SET name = excluded.name`
	sqliteNextReservationID = `UPDATE id_sequences SET value = value + 1 WHERE name = 'reservation' RETURNING value`
)

// SQLiteStore はSQLiteに保存するStore。
type SQLiteStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore はSQLiteデータベースを開き、マイグレーションを適用したStoreを返す。
// pathに ":memory:" を指定するとインメモリデータベースを使う。
func NewSQLiteStore(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	dsn := path
	if path != sqliteMemoryPath {
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// インメモリDBは接続ごとに別のデータベースになるため、接続を1本に固定する
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("データベースへの疎通確認に失敗: %w", err)
	}
	if err := migrate(db.DB, "sqlite3", "migrations/sqlite", logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// ListReservations はすべての予約をID昇順で返す。
func (s *SQLiteStore) ListReservations(ctx context.Context) ([]Reservation, error) {
	list := make([]Reservation, 0)
	if err := s.db.SelectContext(ctx, &list, sqliteListReservations); err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗: %w", err)
	}
	return list, nil
}

// GetReservation はIDで予約を取得する。
func (s *SQLiteStore) GetReservation(ctx context.Context, id uint64) (Reservation, bool, error) {
	var r Reservation
	err := s.db.GetContext(ctx, &r, sqliteGetReservation, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return Reservation{}, false, nil
	}
	if err != nil {
		return Reservation{}, false, fmt.Errorf("予約の取得に失敗: %w", err)
	}
	return r, true, nil
}

// SaveReservation は予約を保存する。
func (s *SQLiteStore) SaveReservation(ctx context.Context, r Reservation) error {
	if _, err := s.db.ExecContext(ctx, sqliteSaveReservation, int64(r.ID), r.Email, r.Room); err != nil {
		return fmt.Errorf("予約の保存に失敗: %w", err)
	}
	return nil
}

// DeleteReservation は予約を削除する。
func (s *SQLiteStore) DeleteReservation(ctx context.Context, id uint64) error {
	if _, err := s.db.ExecContext(ctx, sqliteDeleteReservation, int64(id)); err != nil {
		return fmt.Errorf("予約の削除に失敗: %w", err)
	}
	return nil
}

// GetUser はメールアドレスで利用者を取得する。
func (s *SQLiteStore) GetUser(ctx context.Context, email string) (User, bool, error) {
	var u User
	err := s.db.GetContext(ctx, &u, sqliteGetUser, email)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("利用者の取得に失敗: %w", err)
	}
	return u, true, nil
}

// SaveUser は利用者を保存する。
func (s *SQLiteStore) SaveUser(ctx context.Context, u User) error {
	if _, err := s.db.ExecContext(ctx, sqliteSaveUser, u.Email, u.Name); err != nil {
		return fmt.Errorf("利用者の保存に失敗: %w", err)
	}
	return nil
}

// NextReservationID はid_sequencesテーブルの値を進めて予約IDを採番する。
func (s *SQLiteStore) NextReservationID(ctx context.Context) (uint64, error) {
	var id int64
	if err := s.db.QueryRowxContext(ctx, sqliteNextReservationID).Scan(&id); err != nil {
		return 0, fmt.Errorf("予約IDの採番に失敗: %w", err)
	}
	return uint64(id), nil
}

// Close はデータベース接続を閉じる。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
