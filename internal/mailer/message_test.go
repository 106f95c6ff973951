package mailer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewMessage は通知メッセージの件名と本文を検証する。
func TestNewMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  Message
		want Message
	}{
		{
			name: "作成通知の件名と本文",
			msg:  NewCreatedMessage("a@x.io", "Ann", "101"),
			want: Message{
				To:      "a@x.io",
				Subject: "Reservation created",
				Body:    "Hello, Ann. Your reservation for room 101 has been created",
				Kind:    KindCreated,
			},
		},
		{
			name: "取消通知の件名と本文",
			msg:  NewCancelledMessage("a@x.io", "Ann", "101"),
			want: Message{
				To:      "a@x.io",
				Subject: "Reservation cancelled",
				Body:    "Hello, Ann. Your reservation for room 101 has been cancelled",
				Kind:    KindCancelled,
			},
		},
		{
			name: "空文字の名前や部屋もそのまま埋め込まれること",
			msg:  NewCreatedMessage("", "", ""),
			want: Message{
				Subject: "Reservation created",
				Body:    "Hello, . Your reservation for room  has been created",
				Kind:    KindCreated,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.msg)
		})
	}
}

// TestMessageJSON はメッセージのJSON表現に種類が含まれないことを検証する。
func TestMessageJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewCancelledMessage("b@x.io", "Bob", "7"))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 3)
	assert.Equal(t, "b@x.io", fields["to"])
	assert.Equal(t, "Reservation cancelled", fields["subject"])
	assert.Equal(t, "Hello, Bob. Your reservation for room 7 has been cancelled", fields["body"])
}
