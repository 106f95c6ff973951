package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// PostgreSQLが使用するクエリ。
const (
	pgListReservations  = `SELECT id, email, room FROM reservations ORDER BY id`
	pgGetReservation    = `SELECT id, email, room FROM reservations WHERE id = $1`
	pgSaveReservation   = `INSERT INTO reservations (id, email, room) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, room = EXCLUDED.room`
	pgDeleteReservation = `DELETE FROM reservations WHERE id = $1`
	pgGetUser           = `SELECT name, email FROM users WHERE email = $1`
	pgSaveUser          = `INSERT INTO users (email, name) VALUES ($1, $2) ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name`
	pgNextReservationID = `SELECT nextval('reservation_id_seq')`
)

// PostgresStore はPostgreSQLに保存するStore。予約IDはシーケンスで採番する。
type PostgresStore struct {
	db *sqlx.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore はPostgreSQLに接続し、マイグレーションを適用したStoreを返す。
func NewPostgresStore(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("データベースへの疎通確認に失敗: %w", err)
	}
	if err := migrate(db.DB, "postgres", "migrations/postgres", logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return newPostgresStore(db), nil
}

// newPostgresStore は接続済みのDBからStoreを生成する。マイグレーションは行わない。
func newPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListReservations はすべての予約をID昇順で返す。
func (s *PostgresStore) ListReservations(ctx context.Context) ([]Reservation, error) {
	list := make([]Reservation, 0)
	if err := s.db.SelectContext(ctx, &list, pgListReservations); err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗: %w", err)
	}
	return list, nil
}

// GetReservation はIDで予約を取得する。
func (s *PostgresStore) GetReservation(ctx context.Context, id uint64) (Reservation, bool, error) {
	var r Reservation
	err := s.db.GetContext(ctx, &r, pgGetReservation, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return Reservation{}, false, nil
	}
	if err != nil {
		return Reservation{}, false, fmt.Errorf("予約の取得に失敗: %w", err)
	}
	return r, true, nil
}

// SaveReservation は予約を保存する。
func (s *PostgresStore) SaveReservation(ctx context.Context, r Reservation) error {
	if _, err := s.db.ExecContext(ctx, pgSaveReservation, int64(r.ID), r.Email, r.Room); err != nil {
		return fmt.Errorf("予約の保存に失敗: %w", err)
	}
	return nil
}

// DeleteReservation は予約を削除する。
func (s *PostgresStore) DeleteReservation(ctx context.Context, id uint64) error {
	if _, err := s.db.ExecContext(ctx, pgDeleteReservation, int64(id)); err != nil {
		return fmt.Errorf("予約の削除に失敗: %w", err)
	}
	return nil
}

// GetUser はメールアドレスで利用者を取得する。
func (s *PostgresStore) GetUser(ctx context.Context, email string) (User, bool, error) {
	var u User
	err := s.db.GetContext(ctx, &u, pgGetUser, email)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("利用者の取得に失敗: %w", err)
	}
	return u, true, nil
}

// SaveUser は利用者を保存する。
func (s *PostgresStore) SaveUser(ctx context.Context, u User) error {
	if _, err := s.db.ExecContext(ctx, pgSaveUser, u.Email, u.Name); err != nil {
		return fmt.Errorf("利用者の保存に失敗: %w", err)
	}
	return nil
}

// NextReservationID はreservation_id_seqから予約IDを採番する。
func (s *PostgresStore) NextReservationID(ctx context.Context) (uint64, error) {
	var id int64
	if err := s.db.QueryRowxContext(ctx, pgNextReservationID).Scan(&id); err != nil {
		return 0, fmt.Errorf("予約IDの採番に失敗: %w", err)
	}
	return uint64(id), nil
}

// Close はデータベース接続を閉じる。
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
