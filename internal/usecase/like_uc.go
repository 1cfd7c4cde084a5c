package usecase

import (
	"context"
	"fmt"
	"html"

	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/adapter"
	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/infra/logging"
	"telegram-dating-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ LikeUseCase = (*likeUC)(nil)

// LikeOutcome tells the caller what the like produced.
type LikeOutcome struct {
	Match bool
}

// LikeUseCase records likes and detects mutual matches. The liked user gets
// an anonymous note; on a match both sides learn each other's name.
type LikeUseCase interface {
	Like(ctx context.Context, liker *model.User, likedID string) (*LikeOutcome, error)
}

type likeUC struct {
	likes repository.LikeRepository
	users repository.UserRepository
	bot   adapter.TelegramBotAdapter
	log   *zerolog.Logger
}

func NewLikeUseCase(likes repository.LikeRepository, users repository.UserRepository, bot adapter.TelegramBotAdapter, logger *zerolog.Logger) *likeUC {
	return &likeUC{likes: likes, users: users, bot: bot, log: logger}
}

func (l *likeUC) Like(ctx context.Context, liker *model.User, likedID string) (*LikeOutcome, error) {
	defer logging.TraceDuration(l.log, "LikeUC.Like")()

	like, err := model.NewLike(liker.ID, likedID)
	if err != nil {
		return nil, err
	}

	liked, err := l.users.FindByID(ctx, repository.NoTX, likedID)
	if err != nil {
		return nil, err
	}

	already, err := l.likes.Exists(ctx, repository.NoTX, liker.ID, likedID)
	if err != nil {
		return nil, err
	}
	if err := l.likes.Save(ctx, repository.NoTX, like); err != nil {
		return nil, err
	}
	if !already {
		metrics.IncLike()
	}

	mutual, err := l.likes.Exists(ctx, repository.NoTX, likedID, liker.ID)
	if err != nil {
		return nil, err
	}

	if mutual {
		// Only the like that completed the pair announces the match;
		// repeating it must not notify or count again.
		if !already {
			metrics.IncMatch()
			l.notify(ctx, liked.TelegramID,
				fmt.Sprintf("It's a match! You and <b>%s</b> liked each other.", html.EscapeString(liker.Name)))
			l.notify(ctx, liker.TelegramID,
				fmt.Sprintf("It's a match! You and <b>%s</b> liked each other.", html.EscapeString(liked.Name)))
		}
		return &LikeOutcome{Match: true}, nil
	}

	if !already {
		// Anonymous until reciprocated.
		l.notify(ctx, liked.TelegramID, "Someone liked your profile! Keep browsing to find them.")
	}
	return &LikeOutcome{}, nil
}

// notify is best-effort: a blocked bot must not fail the like itself.
func (l *likeUC) notify(ctx context.Context, tgID int64, text string) {
	if err := l.bot.SendMessage(ctx, tgID, text); err != nil {
		l.log.Warn().Err(err).Int64("tg_id", tgID).Msg("like notification failed")
	}
}
