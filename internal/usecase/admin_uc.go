package usecase

import (
	"context"
	"fmt"
	"time"

	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/adapter"
	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/infra/logging"
	"telegram-dating-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ AdminUseCase = (*adminUC)(nil)

// AdminUseCase implements the moderation operations behind the admin menu.
// Targets are addressed by Telegram ID, which is what admins see and type.
// Every mutation notifies the affected user.
type AdminUseCase interface {
	ListUsers(ctx context.Context, offset, limit int) ([]*model.User, error)
	GrantCoins(ctx context.Context, targetTgID int64, amount int) error
	GrantPremium(ctx context.Context, targetTgID int64, days int) error
	Ban(ctx context.Context, targetTgID int64) error
	Unban(ctx context.Context, targetTgID int64) error
}

type adminUC struct {
	users       repository.UserRepository
	bot         adapter.TelegramBotAdapter
	premiumDays int
	log         *zerolog.Logger
}

func NewAdminUseCase(users repository.UserRepository, bot adapter.TelegramBotAdapter, premiumDays int, logger *zerolog.Logger) *adminUC {
	if premiumDays <= 0 {
		premiumDays = 30
	}
	return &adminUC{users: users, bot: bot, premiumDays: premiumDays, log: logger}
}

func (a *adminUC) ListUsers(ctx context.Context, offset, limit int) ([]*model.User, error) {
	defer logging.TraceDuration(a.log, "AdminUC.ListUsers")()
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return a.users.List(ctx, repository.NoTX, offset, limit)
}

func (a *adminUC) GrantCoins(ctx context.Context, targetTgID int64, amount int) error {
	defer logging.TraceDuration(a.log, "AdminUC.GrantCoins")()
	return a.mutate(ctx, targetTgID, "grant_coins", func(u *model.User) (string, error) {
		if err := u.AddCoins(amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("An admin has granted you %d coins!", amount), nil
	})
}

func (a *adminUC) GrantPremium(ctx context.Context, targetTgID int64, days int) error {
	defer logging.TraceDuration(a.log, "AdminUC.GrantPremium")()
	if days <= 0 {
		days = a.premiumDays
	}
	return a.mutate(ctx, targetTgID, "grant_premium", func(u *model.User) (string, error) {
		u.GrantPremium(time.Duration(days) * 24 * time.Hour)
		return fmt.Sprintf("An admin has granted you premium status for %d days!", days), nil
	})
}

func (a *adminUC) Ban(ctx context.Context, targetTgID int64) error {
	defer logging.TraceDuration(a.log, "AdminUC.Ban")()
	return a.mutate(ctx, targetTgID, "ban", func(u *model.User) (string, error) {
		u.Banned = true
		return "An admin has banned you.", nil
	})
}

func (a *adminUC) Unban(ctx context.Context, targetTgID int64) error {
	defer logging.TraceDuration(a.log, "AdminUC.Unban")()
	return a.mutate(ctx, targetTgID, "unban", func(u *model.User) (string, error) {
		u.Banned = false
		return "An admin has unbanned you.", nil
	})
}

func (a *adminUC) mutate(ctx context.Context, targetTgID int64, action string, fn func(*model.User) (string, error)) error {
	user, err := a.users.FindByTelegramID(ctx, repository.NoTX, targetTgID)
	if err != nil {
		return err
	}
	note, err := fn(user)
	if err != nil {
		return err
	}
	if err := a.users.Save(ctx, repository.NoTX, user); err != nil {
		return err
	}
	metrics.IncAdminAction(action)

	if err := a.bot.SendMessage(ctx, user.TelegramID, note); err != nil {
		a.log.Warn().Err(err).Int64("tg_id", user.TelegramID).Str("action", action).
			Msg("admin notification failed")
	}
	return nil
}
