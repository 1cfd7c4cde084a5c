package model

import (
	"strings"
	"time"

	"telegram-dating-bot/internal/domain"

	"github.com/google/uuid"
)

// StartingCoins is credited to every new account.
const StartingCoins = 100

// ReferralReward is credited to the referrer when a referred user signs up.
const ReferralReward = 50

// User is a domain entity representing a Telegram user in our system.
// Premium is time-boxed: PremiumUntil in the future means premium is active,
// and a background sweep clears it once it lapses.
type User struct {
	ID           string
	TelegramID   int64
	Name         string
	Coins        int
	PremiumUntil time.Time
	Banned       bool
	ReferralCode string
	ReferredBy   string
	CreatedAt    time.Time
	LastActiveAt time.Time
}

func NewUser(id string, tgID int64, name, referredBy string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           id,
		TelegramID:   tgID,
		Name:         name,
		Coins:        StartingCoins,
		ReferralCode: NewReferralCode(),
		ReferredBy:   referredBy,
		CreatedAt:    now,
		LastActiveAt: now,
	}, nil
}

// NewReferralCode returns a short shareable code. Eight hex characters of a
// UUID keep codes typeable in a chat message while staying collision-safe at
// this bot's scale.
func NewReferralCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
func (u *User) Touch()       { u.LastActiveAt = time.Now() }

// Premium reports whether the user holds an unexpired premium grant.
func (u *User) Premium() bool {
	return !u.PremiumUntil.IsZero() && u.PremiumUntil.After(time.Now())
}

// GrantPremium extends premium by the given duration, stacking on top of an
// existing unexpired grant.
func (u *User) GrantPremium(d time.Duration) {
	base := time.Now()
	if u.PremiumUntil.After(base) {
		base = u.PremiumUntil
	}
	u.PremiumUntil = base.Add(d)
}

// AddCoins adjusts the balance. Negative deltas may not take the balance
// below zero.
func (u *User) AddCoins(delta int) error {
	if u.Coins+delta < 0 {
		return domain.ErrInsufficientCoins
	}
	u.Coins += delta
	return nil
}
