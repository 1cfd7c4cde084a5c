package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-dating-bot/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter logs outbound messages instead of hitting the Telegram API.
// Used in dev mode so the rest of the stack can run without a bot token.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	return &NoopBotAdapter{log: logger}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	b.log.Info().Int64("tg_id", tgID).Str("text", text).Msg("noop send")
	return nil
}

func (b *NoopBotAdapter) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	b.log.Info().Int64("tg_id", tgID).Str("text", text).Int("button_rows", len(rows)).Msg("noop send")
	return nil
}

func (b *NoopBotAdapter) SendPhoto(ctx context.Context, tgID int64, fileID, caption string, rows [][]adapter.InlineButton) error {
	b.log.Info().Int64("tg_id", tgID).Str("file_id", fileID).Str("caption", caption).Msg("noop send photo")
	return nil
}
