package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/roombook/internal/logger"
)

// newSQLiteMemoryStore はテスト用のインメモリSQLiteストアを生成する。
func newSQLiteMemoryStore(t *testing.T) Store {
	t.Helper()

	s, err := NewSQLiteStore(t.Context(), ":memory:", logger.NewNop().Logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newMemoryStore(t *testing.T) Store {
	t.Helper()
	return NewMemoryStore()
}

// TestStoreContract はすべてのバックエンドが同じ振る舞いをすることを検証する。
func TestStoreContract(t *testing.T) {
	t.Parallel()

	backends := map[string]func(t *testing.T) Store{
		"memory": newMemoryStore,
		"sqlite": newSQLiteMemoryStore,
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			runStoreContract(t, newStore, true)
		})
	}
}

// runStoreContract はStoreの共通仕様を検証する。
// parallelがfalseの場合、サブテストは同じデータベースを順に使う前提で直列に実行する。
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store, parallel bool) {
	t.Helper()

	run := func(name string, fn func(t *testing.T, s Store)) {
		t.Run(name, func(t *testing.T) {
			if parallel {
				t.Parallel()
			}
			fn(t, newStore(t))
		})
	}

	run("初期状態の予約一覧は空配列であること", func(t *testing.T, s Store) {
		list, err := s.ListReservations(t.Context())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	run("保存した予約を取得できること", func(t *testing.T, s Store) {
		ctx := t.Context()
		want := Reservation{ID: 1, Email: "a@x.io", Room: "101"}
		require.NoError(t, s.SaveReservation(ctx, want))

		got, ok, err := s.GetReservation(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	run("存在しない予約はfalseを返すこと", func(t *testing.T, s Store) {
		got, ok, err := s.GetReservation(t.Context(), 42)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, Reservation{}, got)
	})

	run("同じIDの予約は上書きされること", func(t *testing.T, s Store) {
		ctx := t.Context()
		require.NoError(t, s.SaveReservation(ctx, Reservation{ID: 1, Email: "a@x.io", Room: "101"}))
		require.NoError(t, s.SaveReservation(ctx, Reservation{ID: 1, Email: "b@x.io", Room: "202"}))

		list, err := s.ListReservations(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Reservation{{ID: 1, Email: "b@x.io", Room: "202"}}, list)
	})

	run("予約一覧はID昇順で返ること", func(t *testing.T, s Store) {
		ctx := t.Context()
		for _, id := range []uint64{3, 1, 2} {
			require.NoError(t, s.SaveReservation(ctx, Reservation{ID: id, Email: "a@x.io", Room: "101"}))
		}

		list, err := s.ListReservations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, uint64(1), list[0].ID)
		assert.Equal(t, uint64(2), list[1].ID)
		assert.Equal(t, uint64(3), list[2].ID)
	})

	run("削除は冪等であること", func(t *testing.T, s Store) {
		ctx := t.Context()
		require.NoError(t, s.SaveReservation(ctx, Reservation{ID: 1, Email: "a@x.io", Room: "101"}))

		require.NoError(t, s.DeleteReservation(ctx, 1))
		require.NoError(t, s.DeleteReservation(ctx, 1))
		require.NoError(t, s.DeleteReservation(ctx, 99))

		_, ok, err := s.GetReservation(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	run("利用者を保存して取得できること", func(t *testing.T, s Store) {
		ctx := t.Context()
		_, ok, err := s.GetUser(ctx, "a@x.io")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.SaveUser(ctx, User{Name: "Ann", Email: "a@x.io"}))
		got, ok, err := s.GetUser(ctx, "a@x.io")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, User{Name: "Ann", Email: "a@x.io"}, got)
	})

	run("同じメールアドレスの利用者は上書きされること", func(t *testing.T, s Store) {
		ctx := t.Context()
		require.NoError(t, s.SaveUser(ctx, User{Name: "Ann", Email: "a@x.io"}))
		require.NoError(t, s.SaveUser(ctx, User{Name: "Anna", Email: "a@x.io"}))

		got, ok, err := s.GetUser(ctx, "a@x.io")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Anna", got.Name)
	})

	run("予約IDは削除後も再利用されないこと", func(t *testing.T, s Store) {
		ctx := t.Context()
		first, err := s.NextReservationID(ctx)
		require.NoError(t, err)
		require.NoError(t, s.SaveReservation(ctx, Reservation{ID: first, Email: "a@x.io", Room: "101"}))
		require.NoError(t, s.DeleteReservation(ctx, first))

		second, err := s.NextReservationID(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), first)
		assert.Equal(t, uint64(2), second)
	})
}
