package application

import (
	"context"
	"errors"
	"fmt"
	"html"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/usecase"
)

// Candidate is one browsable profile: the rendered card plus the ID the
// like/next callbacks refer back to.
type Candidate struct {
	UserID string
	Card   *usecase.ProfileCard
}

// BotFacade composes usecases into the high-level operations the Telegram
// adapter invokes. Methods return ready-to-send strings or cards so the
// adapter only deals with chat mechanics.
type BotFacade struct {
	UserUC    usecase.UserUseCase
	ProfileUC usecase.ProfileUseCase
	SearchUC  usecase.SearchUseCase
	LikeUC    usecase.LikeUseCase
	AdminUC   usecase.AdminUseCase
	StatsUC   usecase.StatsUseCase

	adminIDs map[int64]struct{}
	botName  string
}

func NewBotFacade(
	userUC usecase.UserUseCase,
	profileUC usecase.ProfileUseCase,
	searchUC usecase.SearchUseCase,
	likeUC usecase.LikeUseCase,
	adminUC usecase.AdminUseCase,
	statsUC usecase.StatsUseCase,
	adminIDs []int64,
	botName string,
) *BotFacade {
	ids := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return &BotFacade{
		UserUC:    userUC,
		ProfileUC: profileUC,
		SearchUC:  searchUC,
		LikeUC:    likeUC,
		AdminUC:   adminUC,
		StatsUC:   statsUC,
		adminIDs:  ids,
		botName:   botName,
	}
}

// IsAdmin reports whether the Telegram ID is in the configured admin list.
func (b *BotFacade) IsAdmin(tgID int64) bool {
	_, ok := b.adminIDs[tgID]
	return ok
}

// Account loads the caller's account and rejects banned users. Almost every
// handler starts here.
func (b *BotFacade) Account(ctx context.Context, tgID int64) (*model.User, error) {
	u, err := b.UserUC.GetByTelegramID(ctx, tgID)
	if err != nil {
		return nil, err
	}
	if u.Banned {
		return nil, domain.ErrBanned
	}
	return u, nil
}

// HandleStart registers or fetches the user. referralArg is the /start
// payload, empty when the user typed a plain /start.
func (b *BotFacade) HandleStart(ctx context.Context, tgID int64, name, referralArg string) (string, error) {
	u, created, err := b.UserUC.RegisterOrFetch(ctx, tgID, name, referralArg)
	if err != nil {
		return "", fmt.Errorf("register/fetch user: %w", err)
	}
	if u.Banned {
		return "", domain.ErrBanned
	}
	if created {
		return fmt.Sprintf(
			"Welcome, %s! You start with %d coins.\nSet up your profile with the menu below, then search for matches.",
			html.EscapeString(u.Name), u.Coins), nil
	}
	return fmt.Sprintf("Welcome back, %s!", html.EscapeString(u.Name)), nil
}

// HandleProfileCard renders the caller's own profile.
func (b *BotFacade) HandleProfileCard(ctx context.Context, tgID int64) (*usecase.ProfileCard, error) {
	u, err := b.Account(ctx, tgID)
	if err != nil {
		return nil, err
	}
	return b.ProfileUC.Card(ctx, u.ID)
}

// HandleReferral returns the caller's invite link and referral count.
func (b *BotFacade) HandleReferral(ctx context.Context, tgID int64) (string, error) {
	u, err := b.Account(ctx, tgID)
	if err != nil {
		return "", err
	}
	stats, err := b.UserUC.Referral(ctx, u.ID)
	if err != nil {
		return "", fmt.Errorf("referral stats: %w", err)
	}
	return fmt.Sprintf(
		"Invite friends and earn %d coins per signup!\n\nYour link:\nhttps://t.me/%s?start=%s\n\nFriends joined so far: %d",
		model.ReferralReward, b.botName, stats.Code, stats.Count), nil
}

// HandleSearch starts a browse session. The returned count is zero when
// nobody matched the criteria.
func (b *BotFacade) HandleSearch(ctx context.Context, tgID int64, c model.SearchCriteria) (int, error) {
	u, err := b.Account(ctx, tgID)
	if err != nil {
		return 0, err
	}
	return b.SearchUC.Search(ctx, u, c)
}

// HandleNextCandidate pops the next profile from the caller's browse
// session. ok=false means the session is exhausted (or never started).
func (b *BotFacade) HandleNextCandidate(ctx context.Context, tgID int64) (*Candidate, bool, error) {
	if _, err := b.Account(ctx, tgID); err != nil {
		return nil, false, err
	}
	id, ok, err := b.SearchUC.NextCandidate(ctx, tgID)
	if err != nil || !ok {
		return nil, false, err
	}
	card, err := b.ProfileUC.Card(ctx, id)
	if err != nil {
		// Candidate deleted between caching and browsing: skip it.
		if errors.Is(err, domain.ErrNotFound) {
			return b.HandleNextCandidate(ctx, tgID)
		}
		return nil, false, err
	}
	return &Candidate{UserID: id, Card: card}, true, nil
}

// HandleLike records a like on the given candidate.
func (b *BotFacade) HandleLike(ctx context.Context, tgID int64, likedID string) (string, error) {
	u, err := b.Account(ctx, tgID)
	if err != nil {
		return "", err
	}
	out, err := b.LikeUC.Like(ctx, u, likedID)
	if err != nil {
		return "", err
	}
	if out.Match {
		return "It's a match! Check your messages.", nil
	}
	return "Liked!", nil
}

// HandleStore renders the coin store: the caller's balance and the
// premium packages on sale.
func (b *BotFacade) HandleStore(ctx context.Context, tgID int64) (string, []usecase.StoreItem, error) {
	u, err := b.Account(ctx, tgID)
	if err != nil {
		return "", nil, err
	}
	items := usecase.StoreItems()
	text := fmt.Sprintf("<b>Store</b>\nYour balance: %d coins\n", u.Coins)
	for _, it := range items {
		text += fmt.Sprintf("\n%s — %d coins", it.Title, it.Price)
	}
	return text, items, nil
}

// HandleBuy purchases a store item with the caller's coins.
func (b *BotFacade) HandleBuy(ctx context.Context, tgID int64, itemID string) (string, error) {
	u, err := b.Account(ctx, tgID)
	if err != nil {
		return "", err
	}
	updated, item, err := b.UserUC.Purchase(ctx, u.ID, itemID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Purchased %s! You now have %d coins.", item.Title, updated.Coins), nil
}

// HandleEndBrowse drops the caller's browse session.
func (b *BotFacade) HandleEndBrowse(ctx context.Context, tgID int64) error {
	return b.SearchUC.EndBrowse(ctx, tgID)
}

// HandleAdminCommand dispatches a parsed admin mutation. action matches the
// admin conversation steps; target and amount come from the admin's reply.
func (b *BotFacade) HandleAdminCommand(ctx context.Context, adminTgID int64, action string, targetTgID int64, amount int) (string, error) {
	if !b.IsAdmin(adminTgID) {
		return "", domain.ErrInvalidArgument
	}
	switch action {
	case "coins":
		if err := b.AdminUC.GrantCoins(ctx, targetTgID, amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("Granted %d coins to %d.", amount, targetTgID), nil
	case "premium":
		if err := b.AdminUC.GrantPremium(ctx, targetTgID, amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("Granted premium to %d.", targetTgID), nil
	case "ban":
		if err := b.AdminUC.Ban(ctx, targetTgID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Banned %d.", targetTgID), nil
	case "unban":
		if err := b.AdminUC.Unban(ctx, targetTgID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Unbanned %d.", targetTgID), nil
	default:
		return "", domain.ErrInvalidArgument
	}
}

// HandleAdminUsers renders the first page of accounts for the admin menu.
func (b *BotFacade) HandleAdminUsers(ctx context.Context, adminTgID int64) (string, error) {
	if !b.IsAdmin(adminTgID) {
		return "", domain.ErrInvalidArgument
	}
	users, err := b.AdminUC.ListUsers(ctx, 0, 20)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return "No users yet.", nil
	}
	text := "<b>Users:</b>\n"
	for _, u := range users {
		flags := ""
		if u.Premium() {
			flags += " ⭐"
		}
		if u.Banned {
			flags += " 🚫"
		}
		text += fmt.Sprintf("\n<code>%d</code> %s — %d coins%s",
			u.TelegramID, html.EscapeString(u.Name), u.Coins, flags)
	}
	return text, nil
}

// HandleAdminStats renders the user counters for the admin menu.
func (b *BotFacade) HandleAdminStats(ctx context.Context, adminTgID int64) (string, error) {
	if !b.IsAdmin(adminTgID) {
		return "", domain.ErrInvalidArgument
	}
	stats, err := b.StatsUC.Snapshot(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("stats snapshot: %w", err)
	}
	return fmt.Sprintf("<b>Users:</b> %d\n<b>Inactive (30d):</b> %d",
		stats.TotalUsers, stats.InactiveUsers), nil
}
