package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nao1215/roombook/internal/config"
	"github.com/nao1215/roombook/internal/mailer"
)

// Service は予約の一覧・作成・取消を行う。
// Storeに対する一連の操作はすべて単一のミューテックスで直列化し、
// 通知はStoreへの変更を確定させてロックを解放した後に送信する。
type Service struct {
	// mu はStoreに対する一連の操作を直列化する。
	mu sync.Mutex
	// store は予約と利用者の保存先。
	store Store
	// notifier は通知の送信先。
	notifier mailer.Notifier
	// idStrategy は予約IDの採番方式。
	idStrategy string
	// logger は操作結果を記録するロガー。
	logger *slog.Logger
}

// NewService は新しいServiceを生成する。
// idStrategyが空の場合は単調増加の採番を使う。
func NewService(store Store, notifier mailer.Notifier, idStrategy string, logger *slog.Logger) *Service {
	if idStrategy == "" {
		idStrategy = config.IDStrategySequence
	}
	return &Service{
		store:      store,
		notifier:   notifier,
		idStrategy: idStrategy,
		logger:     logger,
	}
}

// List はすべての予約を返す。
func (s *Service) List(ctx context.Context) ([]Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Reservation{}
	}
	return list, nil
}

// Create は予約を作成し、作成通知を送信する。
// 同じメールアドレスの利用者が既に存在する場合、利用者名は更新しない。
func (s *Service) Create(ctx context.Context, req CreateRequest) (Reservation, error) {
	r, err := s.create(ctx, req)
	if err != nil {
		return Reservation{}, err
	}

	mailer.NotifyCreated(ctx, s.notifier, req.Email, req.Name, req.Room)
	s.logger.Info("予約を作成", "reservation_id", r.ID, "room", r.Room)
	return r, nil
}

func (s *Service) create(ctx context.Context, req CreateRequest) (Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextID(ctx)
	if err != nil {
		return Reservation{}, err
	}

	_, found, err := s.store.GetUser(ctx, req.Email)
	if err != nil {
		return Reservation{}, err
	}
	if !found {
		if err := s.store.SaveUser(ctx, User{Name: req.Name, Email: req.Email}); err != nil {
			return Reservation{}, err
		}
	}

	r := Reservation{ID: id, Email: req.Email, Room: req.Room}
	if err := s.store.SaveReservation(ctx, r); err != nil {
		return Reservation{}, err
	}
	return r, nil
}

// nextID は設定された方式で予約IDを採番する。ロックを保持した状態で呼ぶ。
func (s *Service) nextID(ctx context.Context) (uint64, error) {
	if s.idStrategy == config.IDStrategyCount {
		list, err := s.store.ListReservations(ctx)
		if err != nil {
			return 0, err
		}
		return uint64(len(list)) + 1, nil
	}
	return s.store.NextReservationID(ctx)
}

// Cancel は予約を取り消し、利用者が存在すれば取消通知を送信する。
// 予約が存在しない場合はErrNotFoundを返し、通知は送信しない。
func (s *Service) Cancel(ctx context.Context, id uint64) error {
	r, user, found, err := s.cancel(ctx, id)
	if err != nil {
		return err
	}

	if found {
		mailer.NotifyCancelled(ctx, s.notifier, user.Email, user.Name, r.Room)
	} else {
		s.logger.Warn("利用者が存在しないため取消通知を省略", "reservation_id", id, "email", r.Email)
	}
	s.logger.Info("予約を取消", "reservation_id", id, "room", r.Room)
	return nil
}

// cancel は予約を削除し、削除した予約と通知先の利用者を返す。
func (s *Service) cancel(ctx context.Context, id uint64) (Reservation, User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return Reservation{}, User{}, false, err
	}
	if !ok {
		return Reservation{}, User{}, false, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}

	user, found, err := s.store.GetUser(ctx, r.Email)
	if err != nil {
		return Reservation{}, User{}, false, err
	}

	if err := s.store.DeleteReservation(ctx, id); err != nil {
		return Reservation{}, User{}, false, err
	}
	return r, user, found, nil
}

// Outbox は送信済みの通知を送信順で返す。
func (s *Service) Outbox() []mailer.Message {
	return s.notifier.Outbox()
}
