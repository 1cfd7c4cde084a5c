package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// TelegramBotAdapter is the outbound port the use cases talk to when they
// need to push something to a user (like notifications, admin messages).
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	SendButtons(ctx context.Context, telegramID int64, text string, rows [][]InlineButton) error
	// SendPhoto sends a stored Telegram photo by file_id with an HTML caption.
	SendPhoto(ctx context.Context, telegramID int64, fileID, caption string, rows [][]InlineButton) error
}
