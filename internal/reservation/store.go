package reservation

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound は指定された予約が存在しないことを表す。
var ErrNotFound = errors.New("予約が見つかりません")

// Store は予約と利用者を保存する。
// 存在しないことはエラーではなく、戻り値のboolで表す。
type Store interface {
	// ListReservations はすべての予約をID昇順で返す。予約がなければ空スライスを返す。
	ListReservations(ctx context.Context) ([]Reservation, error)
	// GetReservation はIDで予約を取得する。
	GetReservation(ctx context.Context, id uint64) (Reservation, bool, error)
	// SaveReservation は予約を保存する。同じIDの予約は上書きする。
	SaveReservation(ctx context.Context, r Reservation) error
	// DeleteReservation は予約を削除する。存在しなければ何もしない。
	DeleteReservation(ctx context.Context, id uint64) error
	// GetUser はメールアドレスで利用者を取得する。
	GetUser(ctx context.Context, email string) (User, bool, error)
	// SaveUser は利用者を保存する。同じメールアドレスの利用者は上書きする。
	SaveUser(ctx context.Context, u User) error
	// NextReservationID は単調増加する予約IDを採番する。削除されたIDは再利用しない。
	NextReservationID(ctx context.Context) (uint64, error)
	// Close はStoreが保持する資源を解放する。
	Close() error
}

// MemoryStore はプロセス内のマップに保存するStore。エラーを返すことはない。
type MemoryStore struct {
	mu           sync.Mutex
	reservations map[uint64]Reservation
	users        map[string]User
	lastID       uint64
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore は空のMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reservations: make(map[uint64]Reservation),
		users:        make(map[string]User),
	}
}

// ListReservations はすべての予約をID昇順で返す。
func (s *MemoryStore) ListReservations(_ context.Context) ([]Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		list = append(list, r)
	}
	slices.SortFunc(list, func(a, b Reservation) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return list, nil
}

// GetReservation はIDで予約を取得する。
func (s *MemoryStore) GetReservation(_ context.Context, id uint64) (Reservation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	return r, ok, nil
}

// SaveReservation は予約を保存する。
func (s *MemoryStore) SaveReservation(_ context.Context, r Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reservations[r.ID] = r
	return nil
}

// DeleteReservation は予約を削除する。
func (s *MemoryStore) DeleteReservation(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.reservations, id)
	return nil
}

// GetUser はメールアドレスで利用者を取得する。
func (s *MemoryStore) GetUser(_ context.Context, email string) (User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	return u, ok, nil
}

// SaveUser は利用者を保存する。
func (s *MemoryStore) SaveUser(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.Email] = u
	return nil
}

// NextReservationID は次の予約IDを採番する。
func (s *MemoryStore) NextReservationID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	return s.lastID, nil
}

// Close は何もしない。
func (s *MemoryStore) Close() error {
	return nil
}
