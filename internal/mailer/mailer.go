package mailer

import (
	"context"
	"slices"
	"sync"
)

// Notifier は通知の送信とアウトボックスの参照を行う。
type Notifier interface {
	// Send は通知をアウトボックスに追記する。失敗しない。
	Send(ctx context.Context, msg Message)
	// Outbox は送信済み通知のコピーを送信順で返す。
	Outbox() []Message
}

// NotifyCreated は予約作成の通知を生成して送信する。
func NotifyCreated(ctx context.Context, n Notifier, to, name, room string) {
	n.Send(ctx, NewCreatedMessage(to, name, room))
}

// NotifyCancelled は予約取消の通知を生成して送信する。
func NotifyCancelled(ctx context.Context, n Notifier, to, name, room string) {
	n.Send(ctx, NewCancelledMessage(to, name, room))
}

// MemoryMailer はプロセス内のスライスをアウトボックスとするNotifier。
// 複数のゴルーチンから同時に送信しても安全。
type MemoryMailer struct {
	mu     sync.Mutex
	outbox []Message
}

var _ Notifier = (*MemoryMailer)(nil)

// NewMemoryMailer は空のアウトボックスを持つMemoryMailerを生成する。
func NewMemoryMailer() *MemoryMailer {
	return &MemoryMailer{outbox: make([]Message, 0)}
}

// Send は通知をアウトボックスの末尾に追記する。
func (m *MemoryMailer) Send(_ context.Context, msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outbox = append(m.outbox, msg)
}

// Outbox はアウトボックスのスナップショットを返す。
func (m *MemoryMailer) Outbox() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.outbox)
}
