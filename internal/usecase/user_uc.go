package usecase

import (
	"context"
	"errors"
	"time"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/infra/logging"
	"telegram-dating-bot/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// ReferralStats is what the referral menu shows.
type ReferralStats struct {
	Code  string
	Count int
}

// StoreItem is a premium package purchasable with coins.
type StoreItem struct {
	ID    string
	Title string
	Price int
	Days  int
}

// StoreItems lists the packages the store sells, cheapest first.
func StoreItems() []StoreItem {
	return []StoreItem{
		{ID: "premium_7", Title: "Premium, 7 days", Price: 100, Days: 7},
		{ID: "premium_30", Title: "Premium, 30 days", Price: 300, Days: 30},
	}
}

// UserUseCase exposes user-related operations used by bot/admin flows.
type UserUseCase interface {
	// RegisterOrFetch returns the existing account for tgID or creates one,
	// crediting the referrer when a valid referral code accompanies a signup.
	// created reports whether a new account was made.
	RegisterOrFetch(ctx context.Context, tgID int64, name, referralCode string) (u *model.User, created bool, err error)
	GetByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Referral(ctx context.Context, userID string) (*ReferralStats, error)
	// Purchase deducts the item's price from the user's coin balance and
	// grants the premium days it carries.
	Purchase(ctx context.Context, userID, itemID string) (*model.User, *StoreItem, error)
}

type userUC struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, profiles repository.ProfileRepository, tm repository.TransactionManager, logger *zerolog.Logger) *userUC {
	return &userUC{
		users:    users,
		profiles: profiles,
		tm:       tm,
		log:      logger,
	}
}

func (u *userUC) RegisterOrFetch(ctx context.Context, tgID int64, name, referralCode string) (*model.User, bool, error) {
	defer logging.TraceDuration(u.log, "UserUC.RegisterOrFetch")()

	var user *model.User
	var created bool
	// The find/save pair has to be atomic so concurrent /start updates for
	// the same user cannot both take the signup path (and pay the referral
	// reward twice).
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err := u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		usr, err := u.users.FindByTelegramID(ctx, tx, tgID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if usr != nil {
			if usr.Name != name && name != "" {
				usr.Name = name
			}
			usr.Touch()
			if err := u.users.Save(ctx, tx, usr); err != nil {
				u.log.Error().Err(err).Msg("failed to update user")
				return err
			}
			user = usr
			return nil
		}

		nu, err := model.NewUser("", tgID, name, referralCode)
		if err != nil {
			return err
		}
		if err := u.users.Save(ctx, tx, nu); err != nil {
			return err
		}
		profile, err := model.NewProfile(nu.ID)
		if err != nil {
			return err
		}
		if err := u.profiles.Save(ctx, tx, profile); err != nil {
			return err
		}

		if referralCode != "" {
			if err := u.rewardReferrer(ctx, tx, referralCode); err != nil {
				return err
			}
		}

		user = nu
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		metrics.IncUsersRegistered()
	}
	return user, created, nil
}

// rewardReferrer credits the owner of the code. An unknown code is not an
// error; signup proceeds without a reward.
func (u *userUC) rewardReferrer(ctx context.Context, tx repository.Tx, code string) error {
	referrer, err := u.users.FindByReferralCode(ctx, tx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := referrer.AddCoins(model.ReferralReward); err != nil {
		return err
	}
	return u.users.Save(ctx, tx, referrer)
}

func (u *userUC) GetByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.GetByTelegramID")()
	return u.users.FindByTelegramID(ctx, repository.NoTX, tgID)
}

func (u *userUC) GetByID(ctx context.Context, id string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.GetByID")()
	return u.users.FindByID(ctx, repository.NoTX, id)
}

func (u *userUC) Purchase(ctx context.Context, userID, itemID string) (*model.User, *StoreItem, error) {
	defer logging.TraceDuration(u.log, "UserUC.Purchase")()

	var item *StoreItem
	for _, it := range StoreItems() {
		if it.ID == itemID {
			cp := it
			item = &cp
			break
		}
	}
	if item == nil {
		return nil, nil, domain.ErrInvalidArgument
	}

	var user *model.User
	// Balance check and grant must see a consistent row, same as signup.
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err := u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		usr, err := u.users.FindByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := usr.AddCoins(-item.Price); err != nil {
			return err
		}
		usr.GrantPremium(time.Duration(item.Days) * 24 * time.Hour)
		if err := u.users.Save(ctx, tx, usr); err != nil {
			return err
		}
		user = usr
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return user, item, nil
}

func (u *userUC) Referral(ctx context.Context, userID string) (*ReferralStats, error) {
	defer logging.TraceDuration(u.log, "UserUC.Referral")()

	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	count, err := u.users.CountReferred(ctx, repository.NoTX, user.ReferralCode)
	if err != nil {
		return nil, err
	}
	return &ReferralStats{Code: user.ReferralCode, Count: count}, nil
}
