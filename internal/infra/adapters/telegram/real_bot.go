package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-dating-bot/internal/application"
	"telegram-dating-bot/internal/config"
	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/adapter"
	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/infra/metrics"
	red "telegram-dating-bot/internal/infra/redis"
	"telegram-dating-bot/internal/infra/worker"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// RealTelegramBotAdapter polls Telegram for updates and drives the
// conversation state machine. Inbound updates fan out over a worker pool;
// outbound sends implement the adapter port the use cases talk to.
type RealTelegramBotAdapter struct {
	bot     *tgbotapi.BotAPI
	cfg     *config.BotConfig
	facade  *application.BotFacade
	states  repository.StateRepository
	limiter *red.RateLimiter
	pool    *worker.Pool
	log     *zerolog.Logger

	rateLimitPerMin int
	cancelPolling   context.CancelFunc
}

func NewRealTelegramBotAdapter(
	cfg *config.BotConfig,
	states repository.StateRepository,
	limiter *red.RateLimiter,
	rateLimitPerMin int,
	logger *zerolog.Logger,
) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	return &RealTelegramBotAdapter{
		bot:             bot,
		cfg:             cfg,
		states:          states,
		limiter:         limiter,
		pool:            worker.NewPool(workers, logger),
		log:             logger,
		rateLimitPerMin: rateLimitPerMin,
	}, nil
}

// Username is the bot's Telegram handle, used to build invite links.
func (r *RealTelegramBotAdapter) Username() string { return r.bot.Self.UserName }

// AttachFacade closes the construction cycle: the use cases need this
// adapter as their outbound port, and this adapter needs the facade built
// from those use cases.
func (r *RealTelegramBotAdapter) AttachFacade(f *application.BotFacade) { r.facade = f }

func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	if r.facade == nil {
		return errors.New("facade not attached")
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	r.pool.Start(ctx)
	defer r.pool.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case up := <-updates:
			update := up
			if err := r.pool.Submit(func(ctx context.Context) error {
				return r.handleUpdate(ctx, update)
			}); err != nil {
				r.log.Warn().Err(err).Msg("update dropped")
			}
		}
	}
}

// StopPolling is safe to call on a nil adapter or before polling started,
// so shutdown paths need no mode checks.
func (r *RealTelegramBotAdapter) StopPolling() {
	if r == nil || r.cancelPolling == nil {
		return
	}
	r.cancelPolling()
}

// ---- outbound port ----

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	msg := tgbotapi.NewMessage(tgID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(tgID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = buildKeyboard(rows)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) SendPhoto(ctx context.Context, tgID int64, fileID, caption string, rows [][]adapter.InlineButton) error {
	if fileID == "" {
		return r.SendButtons(ctx, tgID, caption, rows)
	}
	photo := tgbotapi.NewPhoto(tgID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	if len(rows) > 0 {
		photo.ReplyMarkup = buildKeyboard(rows)
	}
	_, err := r.bot.Send(photo)
	return err
}

func buildKeyboard(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kr := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			switch {
			case btn.URL != "":
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL))
			case btn.Data != "":
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonData(label, btn.Data))
			default:
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonData(label, label))
			}
		}
		kbRows = append(kbRows, kr)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

// ---- inbound routing ----

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return r.handleCallback(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	msg := update.Message
	tgID := msg.From.ID

	command := "message"
	if msg.IsCommand() {
		command = "/" + msg.Command()
	}
	metrics.IncTelegramCommand(command)

	if !r.allow(ctx, tgID, command) {
		return r.SendMessage(ctx, tgID, "Too many requests. Please slow down.")
	}

	if msg.IsCommand() {
		return r.handleCommand(ctx, msg)
	}

	// Not a command: feed the answer into whatever flow is in progress.
	state, err := r.states.GetState(ctx, tgID)
	if err != nil {
		return err
	}
	if state == nil {
		return r.sendMainMenu(ctx, tgID, "Use the menu below, or /help for commands.")
	}
	return r.handleStep(ctx, msg, state)
}

func (r *RealTelegramBotAdapter) allow(ctx context.Context, tgID int64, command string) bool {
	if r.limiter == nil {
		return true
	}
	allowed, err := r.limiter.Allow(ctx, red.UserCommandKey(tgID, command), r.rateLimitPerMin, time.Minute)
	if err != nil {
		r.log.Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	if !allowed {
		metrics.IncRateLimitTriggered()
	}
	return allowed
}

func (r *RealTelegramBotAdapter) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	tgID := msg.From.ID

	switch msg.Command() {
	case "start":
		text, err := r.facade.HandleStart(ctx, tgID, displayName(msg.From), strings.TrimSpace(msg.CommandArguments()))
		if err != nil {
			if errors.Is(err, domain.ErrBanned) {
				return r.SendMessage(ctx, tgID, "Your account is banned.")
			}
			return err
		}
		_ = r.states.ClearState(ctx, tgID)
		return r.sendMainMenu(ctx, tgID, text)

	case "menu":
		return r.sendMainMenu(ctx, tgID, "Choose an action:")

	case "profile":
		return r.startProfileFlow(ctx, tgID)

	case "search":
		return r.startSearchFlow(ctx, tgID)

	case "referral":
		return r.sendReferral(ctx, tgID)

	case "cancel":
		if err := r.states.ClearState(ctx, tgID); err != nil {
			return err
		}
		_ = r.facade.HandleEndBrowse(ctx, tgID)
		return r.sendMainMenu(ctx, tgID, "Cancelled.")

	case "admin":
		if !r.facade.IsAdmin(tgID) {
			return r.SendMessage(ctx, tgID, "Unknown command. Try /help.")
		}
		return r.sendAdminMenu(ctx, tgID)

	case "help":
		return r.SendMessage(ctx, tgID,
			"Commands:\n/start - register\n/menu - main menu\n/profile - set up your profile\n/search - find matches\n/referral - invite friends\n/cancel - abort the current flow")

	default:
		return r.SendMessage(ctx, tgID, "Unknown command. Try /help.")
	}
}

// handleStep consumes a free-form message as the answer to the current step.
func (r *RealTelegramBotAdapter) handleStep(ctx context.Context, msg *tgbotapi.Message, state *repository.ConversationState) error {
	tgID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	u, err := r.facade.Account(ctx, tgID)
	if err != nil {
		if errors.Is(err, domain.ErrBanned) {
			return r.SendMessage(ctx, tgID, "Your account is banned.")
		}
		return err
	}

	switch state.Step {
	case repository.StepAskAge:
		if err := r.facade.ProfileUC.SetAge(ctx, u.ID, text); err != nil {
			return r.SendMessage(ctx, tgID, fmt.Sprintf("Please send your age as a number between %d and %d.", model.MinAge, model.MaxAge))
		}
		return r.askStep(ctx, tgID, repository.StepAskBio, "Tell me a bit about yourself (your bio):", nil)

	case repository.StepAskBio:
		if err := r.facade.ProfileUC.SetBio(ctx, u.ID, text); err != nil {
			return r.SendMessage(ctx, tgID, "Your bio cannot be empty. Try again:")
		}
		return r.askStep(ctx, tgID, repository.StepAskPhoto, "Now send me a photo of yourself:", nil)

	case repository.StepAskPhoto:
		fileID := largestPhotoID(msg)
		if fileID == "" {
			return r.SendMessage(ctx, tgID, "That doesn't look like a photo. Please send one:")
		}
		if err := r.facade.ProfileUC.SetPhoto(ctx, u.ID, fileID); err != nil {
			return err
		}
		return r.askStep(ctx, tgID, repository.StepAskLocation, "Last step: what city are you in?", nil)

	case repository.StepAskLocation:
		if err := r.facade.ProfileUC.SetLocation(ctx, u.ID, text); err != nil {
			return r.SendMessage(ctx, tgID, "Please send your city as text:")
		}
		if err := r.states.ClearState(ctx, tgID); err != nil {
			return err
		}
		if err := r.SendMessage(ctx, tgID, "Your profile is complete!"); err != nil {
			return err
		}
		return r.sendOwnProfile(ctx, tgID)

	case repository.StepSearchMinAge:
		age, err := strconv.Atoi(text)
		if err != nil || age < model.MinAge || age > model.MaxAge {
			return r.SendMessage(ctx, tgID, "Please send a minimum age as a number:")
		}
		state.Data["min_age"] = text
		state.Step = repository.StepSearchMaxAge
		if err := r.states.SetState(ctx, tgID, state); err != nil {
			return err
		}
		return r.SendMessage(ctx, tgID, "And the maximum age?")

	case repository.StepSearchMaxAge:
		if _, err := strconv.Atoi(text); err != nil {
			return r.SendMessage(ctx, tgID, "Please send a maximum age as a number:")
		}
		state.Data["max_age"] = text
		return r.runSearch(ctx, tgID, state)

	case repository.StepAdminCoins, repository.StepAdminPremium, repository.StepAdminBan, repository.StepAdminUnban:
		return r.handleAdminReply(ctx, tgID, state.Step, text)

	default:
		// Stale or foreign step: reset rather than trap the user.
		_ = r.states.ClearState(ctx, tgID)
		return r.sendMainMenu(ctx, tgID, "Let's start over. Choose an action:")
	}
}

func (r *RealTelegramBotAdapter) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.From == nil {
		return errors.New("invalid callback query")
	}
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	tgID := query.From.ID
	data := strings.TrimSpace(query.Data)

	if !r.allow(ctx, tgID, "callback") {
		return r.SendMessage(ctx, tgID, "Too many requests. Please slow down.")
	}

	switch {
	case data == "menu":
		return r.sendMainMenu(ctx, tgID, "Choose an action:")
	case data == "profile:edit":
		return r.startProfileFlow(ctx, tgID)
	case data == "profile:me":
		return r.sendOwnProfile(ctx, tgID)
	case data == "search":
		return r.startSearchFlow(ctx, tgID)
	case data == "referral":
		return r.sendReferral(ctx, tgID)
	case data == "store":
		return r.sendStore(ctx, tgID)
	case data == "next":
		return r.sendNextCandidate(ctx, tgID)
	case data == "stop":
		if err := r.facade.HandleEndBrowse(ctx, tgID); err != nil {
			return err
		}
		_ = r.states.ClearState(ctx, tgID)
		return r.sendMainMenu(ctx, tgID, "Browsing ended.")
	case strings.HasPrefix(data, "like:"):
		return r.handleLike(ctx, tgID, strings.TrimPrefix(data, "like:"))
	case strings.HasPrefix(data, "buy:"):
		return r.handleBuy(ctx, tgID, strings.TrimPrefix(data, "buy:"))
	case strings.HasPrefix(data, "gender:"):
		return r.handleGenderAnswer(ctx, tgID, strings.TrimPrefix(data, "gender:"))
	case strings.HasPrefix(data, "sgender:"):
		return r.handleSearchGenderAnswer(ctx, tgID, strings.TrimPrefix(data, "sgender:"))
	case strings.HasPrefix(data, "admin:"):
		return r.handleAdminCallback(ctx, tgID, strings.TrimPrefix(data, "admin:"))
	default:
		r.log.Debug().Str("data", data).Msg("unknown callback")
		return nil
	}
}

// ---- flows ----

func (r *RealTelegramBotAdapter) startProfileFlow(ctx context.Context, tgID int64) error {
	if _, err := r.facade.Account(ctx, tgID); err != nil {
		return r.accountError(ctx, tgID, err)
	}
	rows := [][]adapter.InlineButton{{
		{Text: "Male", Data: "gender:male"},
		{Text: "Female", Data: "gender:female"},
		{Text: "Other", Data: "gender:other"},
	}}
	return r.askStep(ctx, tgID, repository.StepAskGender, "Let's set up your profile. What's your gender?", rows)
}

func (r *RealTelegramBotAdapter) handleGenderAnswer(ctx context.Context, tgID int64, answer string) error {
	u, err := r.facade.Account(ctx, tgID)
	if err != nil {
		return r.accountError(ctx, tgID, err)
	}
	if err := r.facade.ProfileUC.SetGender(ctx, u.ID, answer); err != nil {
		return r.SendMessage(ctx, tgID, "Please pick a gender with the buttons.")
	}
	return r.askStep(ctx, tgID, repository.StepAskAge, "How old are you?", nil)
}

func (r *RealTelegramBotAdapter) startSearchFlow(ctx context.Context, tgID int64) error {
	if _, err := r.facade.Account(ctx, tgID); err != nil {
		return r.accountError(ctx, tgID, err)
	}
	rows := [][]adapter.InlineButton{{
		{Text: "Male", Data: "sgender:male"},
		{Text: "Female", Data: "sgender:female"},
		{Text: "Other", Data: "sgender:other"},
	}}
	return r.askStep(ctx, tgID, repository.StepSearchGender, "Who are you looking for?", rows)
}

func (r *RealTelegramBotAdapter) handleSearchGenderAnswer(ctx context.Context, tgID int64, answer string) error {
	if _, err := model.ParseGender(answer); err != nil {
		return r.SendMessage(ctx, tgID, "Please pick a gender with the buttons.")
	}
	state := &repository.ConversationState{
		Step: repository.StepSearchMinAge,
		Data: map[string]string{"gender": answer},
	}
	if err := r.states.SetState(ctx, tgID, state); err != nil {
		return err
	}
	return r.SendMessage(ctx, tgID, "What's the minimum age?")
}

func (r *RealTelegramBotAdapter) runSearch(ctx context.Context, tgID int64, state *repository.ConversationState) error {
	gender, _ := model.ParseGender(state.Data["gender"])
	minAge, _ := strconv.Atoi(state.Data["min_age"])
	maxAge, _ := strconv.Atoi(state.Data["max_age"])

	count, err := r.facade.HandleSearch(ctx, tgID, model.SearchCriteria{
		Gender: gender,
		MinAge: minAge,
		MaxAge: maxAge,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileIncomplete):
			_ = r.states.ClearState(ctx, tgID)
			return r.SendMessage(ctx, tgID, "Finish your own profile first: /profile")
		case errors.Is(err, domain.ErrInvalidArgument):
			return r.SendMessage(ctx, tgID, "The age range doesn't make sense. What's the maximum age?")
		default:
			return err
		}
	}
	if count == 0 {
		_ = r.states.ClearState(ctx, tgID)
		return r.sendMainMenu(ctx, tgID, "Nobody matches your search right now. Try different criteria later!")
	}

	state.Step = repository.StepBrowsing
	if err := r.states.SetState(ctx, tgID, state); err != nil {
		return err
	}
	if err := r.SendMessage(ctx, tgID, fmt.Sprintf("Found %d profiles for you!", count)); err != nil {
		return err
	}
	return r.sendNextCandidate(ctx, tgID)
}

func (r *RealTelegramBotAdapter) sendNextCandidate(ctx context.Context, tgID int64) error {
	cand, ok, err := r.facade.HandleNextCandidate(ctx, tgID)
	if err != nil {
		return r.accountError(ctx, tgID, err)
	}
	if !ok {
		_ = r.states.ClearState(ctx, tgID)
		return r.sendMainMenu(ctx, tgID, "No more profiles. Search again?")
	}
	rows := [][]adapter.InlineButton{
		{
			{Text: "❤️ Like", Data: "like:" + cand.UserID},
			{Text: "➡️ Next", Data: "next"},
		},
		{{Text: "⏹ Stop", Data: "stop"}},
	}
	return r.SendPhoto(ctx, tgID, cand.Card.PhotoID, cand.Card.Text, rows)
}

func (r *RealTelegramBotAdapter) handleLike(ctx context.Context, tgID int64, likedID string) error {
	text, err := r.facade.HandleLike(ctx, tgID, likedID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return r.sendNextCandidate(ctx, tgID)
		}
		return r.accountError(ctx, tgID, err)
	}
	if err := r.SendMessage(ctx, tgID, text); err != nil {
		return err
	}
	return r.sendNextCandidate(ctx, tgID)
}

func (r *RealTelegramBotAdapter) sendOwnProfile(ctx context.Context, tgID int64) error {
	card, err := r.facade.HandleProfileCard(ctx, tgID)
	if err != nil {
		return r.accountError(ctx, tgID, err)
	}
	rows := [][]adapter.InlineButton{
		{{Text: "✏️ Edit Profile", Data: "profile:edit"}},
		{{Text: "◀️ Menu", Data: "menu"}},
	}
	return r.SendPhoto(ctx, tgID, card.PhotoID, card.Text, rows)
}

func (r *RealTelegramBotAdapter) sendReferral(ctx context.Context, tgID int64) error {
	text, err := r.facade.HandleReferral(ctx, tgID)
	if err != nil {
		return r.accountError(ctx, tgID, err)
	}
	rows := [][]adapter.InlineButton{{{Text: "◀️ Menu", Data: "menu"}}}
	return r.SendButtons(ctx, tgID, text, rows)
}

func (r *RealTelegramBotAdapter) sendStore(ctx context.Context, tgID int64) error {
	text, items, err := r.facade.HandleStore(ctx, tgID)
	if err != nil {
		return r.accountError(ctx, tgID, err)
	}
	rows := make([][]adapter.InlineButton, 0, len(items)+1)
	for _, it := range items {
		rows = append(rows, []adapter.InlineButton{{Text: it.Title, Data: "buy:" + it.ID}})
	}
	rows = append(rows, []adapter.InlineButton{{Text: "◀️ Menu", Data: "menu"}})
	return r.SendButtons(ctx, tgID, text, rows)
}

func (r *RealTelegramBotAdapter) handleBuy(ctx context.Context, tgID int64, itemID string) error {
	text, err := r.facade.HandleBuy(ctx, tgID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientCoins):
			return r.SendMessage(ctx, tgID, "Not enough coins. Invite friends to earn more!")
		case errors.Is(err, domain.ErrInvalidArgument):
			return r.sendStore(ctx, tgID)
		default:
			return r.accountError(ctx, tgID, err)
		}
	}
	return r.SendMessage(ctx, tgID, text)
}

func (r *RealTelegramBotAdapter) sendMainMenu(ctx context.Context, tgID int64, intro string) error {
	rows := [][]adapter.InlineButton{
		{{Text: "📝 My Profile", Data: "profile:me"}, {Text: "✏️ Edit Profile", Data: "profile:edit"}},
		{{Text: "🔍 Search", Data: "search"}},
		{{Text: "🎁 Invite Friends", Data: "referral"}, {Text: "🛒 Store", Data: "store"}},
	}
	if r.facade.IsAdmin(tgID) {
		rows = append(rows, []adapter.InlineButton{{Text: "🛠 Admin", Data: "admin:menu"}})
	}
	if strings.TrimSpace(intro) == "" {
		intro = "Choose an action:"
	}
	return r.SendButtons(ctx, tgID, intro, rows)
}

// ---- admin flows ----

func (r *RealTelegramBotAdapter) sendAdminMenu(ctx context.Context, tgID int64) error {
	rows := [][]adapter.InlineButton{
		{{Text: "💰 Grant Coins", Data: "admin:coins"}, {Text: "⭐ Grant Premium", Data: "admin:premium"}},
		{{Text: "🚫 Ban", Data: "admin:ban"}, {Text: "✅ Unban", Data: "admin:unban"}},
		{{Text: "📊 Stats", Data: "admin:stats"}, {Text: "👥 List Users", Data: "admin:users"}},
		{{Text: "◀️ Menu", Data: "menu"}},
	}
	return r.SendButtons(ctx, tgID, "Admin menu:", rows)
}

func (r *RealTelegramBotAdapter) handleAdminCallback(ctx context.Context, tgID int64, action string) error {
	if !r.facade.IsAdmin(tgID) {
		return nil
	}
	switch action {
	case "menu":
		return r.sendAdminMenu(ctx, tgID)
	case "stats":
		text, err := r.facade.HandleAdminStats(ctx, tgID)
		if err != nil {
			return err
		}
		return r.SendMessage(ctx, tgID, text)
	case "users":
		text, err := r.facade.HandleAdminUsers(ctx, tgID)
		if err != nil {
			return err
		}
		return r.SendMessage(ctx, tgID, text)
	case "coins":
		return r.askStep(ctx, tgID, repository.StepAdminCoins, "Send: <code>telegram_id amount</code>", nil)
	case "premium":
		return r.askStep(ctx, tgID, repository.StepAdminPremium, "Send: <code>telegram_id days</code>", nil)
	case "ban":
		return r.askStep(ctx, tgID, repository.StepAdminBan, "Send the Telegram ID to ban:", nil)
	case "unban":
		return r.askStep(ctx, tgID, repository.StepAdminUnban, "Send the Telegram ID to unban:", nil)
	default:
		return nil
	}
}

func (r *RealTelegramBotAdapter) handleAdminReply(ctx context.Context, tgID int64, step, text string) error {
	action, target, amount, err := ParseAdminReply(step, text)
	if err != nil {
		return r.SendMessage(ctx, tgID, "Could not parse that. Try again, or /cancel.")
	}
	reply, err := r.facade.HandleAdminCommand(ctx, tgID, action, target, amount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return r.SendMessage(ctx, tgID, "No user with that Telegram ID.")
		}
		return r.SendMessage(ctx, tgID, "Action failed: "+err.Error())
	}
	if err := r.states.ClearState(ctx, tgID); err != nil {
		return err
	}
	return r.SendMessage(ctx, tgID, reply)
}

// ParseAdminReply turns an admin's free-form reply into a dispatchable
// action. Coins and premium replies carry "<tgID> <amount>", ban and unban
// just the target ID.
func ParseAdminReply(step, text string) (action string, target int64, amount int, err error) {
	fields := strings.Fields(text)
	switch step {
	case repository.StepAdminCoins, repository.StepAdminPremium:
		if len(fields) != 2 {
			return "", 0, 0, domain.ErrInvalidArgument
		}
		target, err = strconv.ParseInt(fields[0], 10, 64)
		if err != nil || target <= 0 {
			return "", 0, 0, domain.ErrInvalidArgument
		}
		amount, err = strconv.Atoi(fields[1])
		if err != nil {
			return "", 0, 0, domain.ErrInvalidArgument
		}
		if step == repository.StepAdminCoins {
			return "coins", target, amount, nil
		}
		return "premium", target, amount, nil
	case repository.StepAdminBan, repository.StepAdminUnban:
		if len(fields) != 1 {
			return "", 0, 0, domain.ErrInvalidArgument
		}
		target, err = strconv.ParseInt(fields[0], 10, 64)
		if err != nil || target <= 0 {
			return "", 0, 0, domain.ErrInvalidArgument
		}
		if step == repository.StepAdminBan {
			return "ban", target, 0, nil
		}
		return "unban", target, 0, nil
	default:
		return "", 0, 0, domain.ErrInvalidArgument
	}
}

// ---- helpers ----

func (r *RealTelegramBotAdapter) askStep(ctx context.Context, tgID int64, step, question string, rows [][]adapter.InlineButton) error {
	if err := r.states.SetState(ctx, tgID, &repository.ConversationState{Step: step, Data: map[string]string{}}); err != nil {
		return err
	}
	if len(rows) > 0 {
		return r.SendButtons(ctx, tgID, question, rows)
	}
	return r.SendMessage(ctx, tgID, question)
}

func (r *RealTelegramBotAdapter) accountError(ctx context.Context, tgID int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrBanned):
		return r.SendMessage(ctx, tgID, "Your account is banned.")
	case errors.Is(err, domain.ErrNotFound):
		return r.SendMessage(ctx, tgID, "No account found. Send /start first.")
	default:
		return err
	}
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "anonymous"
	}
	return name
}

func largestPhotoID(msg *tgbotapi.Message) string {
	if len(msg.Photo) == 0 {
		return ""
	}
	best := msg.Photo[0]
	for _, p := range msg.Photo[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best.FileID
}
