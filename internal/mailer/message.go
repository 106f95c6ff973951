package mailer

import "fmt"

// Kind は通知メッセージの種類を表す。
type Kind string

const (
	// KindCreated は予約作成の通知。
	KindCreated Kind = "created"
	// KindCancelled は予約取消の通知。
	KindCancelled Kind = "cancelled"
)

// 件名は種類ごとに固定。
const (
	subjectCreated   = "Reservation created"
	subjectCancelled = "Reservation cancelled"
)

// Message は送信済み通知の1件。生成後は変更しない。
type Message struct {
	// To は通知先メールアドレス。
	To string `json:"to"`
	// Subject は件名。
	Subject string `json:"subject"`
	// Body は本文。
	Body string `json:"body"`
	// Kind は通知の種類。外部には公開しない。
	Kind Kind `json:"-"`
}

// NewCreatedMessage は予約作成の通知メッセージを生成する。
func NewCreatedMessage(to, name, room string) Message {
	return Message{
		To:      to,
		Subject: subjectCreated,
		Body:    fmt.Sprintf("Hello, %s. Your reservation for room %s has been created", name, room),
		Kind:    KindCreated,
	}
}

// NewCancelledMessage は予約取消の通知メッセージを生成する。
func NewCancelledMessage(to, name, room string) Message {
	return Message{
		To:      to,
		Subject: subjectCancelled,
		Body:    fmt.Sprintf("Hello, %s. Your reservation for room %s has been cancelled", name, room),
		Kind:    KindCancelled,
	}
}
