// File: internal/infra/telegram/real_bot_test.go
package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestClassifyMessage(t *testing.T) {
	cases := []struct {
		name string
		msg  *tgbotapi.Message
		want string
	}{
		{
			name: "command",
			msg: &tgbotapi.Message{
				Text:     "/start",
				Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
			},
			want: kindCommand,
		},
		{
			name: "plain text",
			msg:  &tgbotapi.Message{Text: "hello"},
			want: kindText,
		},
		{
			name: "voice",
			msg:  &tgbotapi.Message{Voice: &tgbotapi.Voice{FileID: "v1"}},
			want: kindVoice,
		},
		{
			name: "photo",
			msg:  &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "p1"}}},
			want: kindPhoto,
		},
		{
			name: "sticker falls through",
			msg:  &tgbotapi.Message{},
			want: kindOther,
		},
		{
			name: "voice with caption still voice",
			msg:  &tgbotapi.Message{Voice: &tgbotapi.Voice{FileID: "v1"}, Text: ""},
			want: kindVoice,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyMessage(tc.msg); got != tc.want {
				t.Errorf("classifyMessage = %q, want %q", got, tc.want)
			}
		})
	}
}
