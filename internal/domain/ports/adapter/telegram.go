package adapter

import "context"

// TelegramBotAdapter is the outbound message surface the bot logic depends
// on: send, edit and delete. SendMessage returns the message id so interim
// notices can later be replaced or removed.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) (messageID int, err error)
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// FileDownloader fetches a transport-hosted file (voice note, photo) by its
// file id into destPath.
type FileDownloader interface {
	DownloadFile(ctx context.Context, fileID, destPath string) error
}
