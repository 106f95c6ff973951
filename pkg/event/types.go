// Package event は予約サービスが外部へ配信する通知イベントの型を定義する。
package event

import (
	"encoding/json"
	"time"
)

// AggregateType はイベントの対象となるエンティティの種類を表す。
type AggregateType string

const (
	// AggregateTypeReservation は予約エンティティを表す。
	AggregateTypeReservation AggregateType = "Reservation"
)

// Type はイベントの種類を表す。
type Type string

const (
	// TypeReservationCreated は予約が作成され、作成通知が送信されたことを表す。
	TypeReservationCreated Type = "ReservationCreated"
	// TypeReservationCancelled は予約が取り消され、取消通知が送信されたことを表す。
	TypeReservationCancelled Type = "ReservationCancelled"
)

// Event は外部へ配信される不変のイベントレコード。
type Event struct {
	// ID はイベントの一意識別子（UUID）。
	ID string `json:"id"`
	// AggregateID は対象エンティティの識別子。通知先メールアドレスを使う。
	AggregateID string `json:"aggregate_id"`
	// AggregateType は対象エンティティの種類。
	AggregateType AggregateType `json:"aggregate_type"`
	// EventType はイベントの種類。
	EventType Type `json:"event_type"`
	// Data はイベント固有のデータ（JSON形式）。
	Data json.RawMessage `json:"data"`
	// Version は送信元での通し番号（1始まり）。同じ送信元で重複しない。
	Version int64 `json:"version"`
	// CreatedAt はイベントが作成された日時。
	CreatedAt time.Time `json:"created_at"`
}

// MessageData は通知メッセージ系イベントのデータ。
type MessageData struct {
	// To は通知先メールアドレス。
	To string `json:"to"`
	// Subject は件名。
	Subject string `json:"subject"`
	// Body は本文。
	Body string `json:"body"`
}
