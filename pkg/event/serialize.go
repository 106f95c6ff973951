package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownType は未定義のイベント種別が指定されたことを表す。
var ErrUnknownType = errors.New("未定義のイベント種別です")

// Known は定義済みのイベント種別かどうかを返す。
func (t Type) Known() bool {
	switch t {
	case TypeReservationCreated, TypeReservationCancelled:
		return true
	}
	return false
}

// TypeForKind は通知の種類名（"created"/"cancelled"）に対応するイベント種別を返す。
// 未定義の種類名には空文字を返す。
func TypeForKind(kind string) Type {
	switch kind {
	case "created":
		return TypeReservationCreated
	case "cancelled":
		return TypeReservationCancelled
	}
	return ""
}

// New は新しいイベントを生成する。
// dataはJSON形式にシリアライズされ、IDはUUIDで採番される。
func New(aggregateID string, aggregateType AggregateType, eventType Type, version int64, data any) (*Event, error) {
	if !eventType.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, eventType)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("イベントデータのシリアライズに失敗: %w", err)
	}

	return &Event{
		ID:            uuid.NewString(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          raw,
		Version:       version,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// NewMessage は通知メッセージからイベントを生成する。
// 対象エンティティは予約、識別子は通知先メールアドレスになる。
func NewMessage(eventType Type, version int64, data MessageData) (*Event, error) {
	return New(data.To, AggregateTypeReservation, eventType, version, data)
}

// DecodeData はイベントのDataフィールドを指定された型にデシリアライズする。
func DecodeData[T any](e *Event) (*T, error) {
	var data T
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("イベントデータのデシリアライズに失敗: %w", err)
	}
	return &data, nil
}
