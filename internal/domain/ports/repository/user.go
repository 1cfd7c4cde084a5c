package repository

import (
	"context"
	"time"

	"telegram-dating-bot/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByTelegramID(ctx context.Context, tx Tx, tgID int64) (*model.User, error)
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByReferralCode(ctx context.Context, tx Tx, code string) (*model.User, error)
	CountReferred(ctx context.Context, tx Tx, code string) (int, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.User, error)
	// FindPremiumExpired returns users whose premium grant lapsed before now.
	FindPremiumExpired(ctx context.Context, tx Tx, now time.Time) ([]*model.User, error)
	CountUsers(ctx context.Context, tx Tx) (int, error)
	CountInactiveUsers(ctx context.Context, tx Tx, since time.Time) (int, error)
}
