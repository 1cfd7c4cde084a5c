package repository

import (
	"context"
)

// Conversation steps for the bot's multi-step flows.
const (
	StepAskGender     = "ask_gender"
	StepAskAge        = "ask_age"
	StepAskBio        = "ask_bio"
	StepAskPhoto      = "ask_photo"
	StepAskLocation   = "ask_location"
	StepSearchGender  = "search_gender"
	StepSearchMinAge  = "search_min_age"
	StepSearchMaxAge  = "search_max_age"
	StepBrowsing      = "browsing"
	StepAdminCoins    = "admin_grant_coins"
	StepAdminPremium  = "admin_grant_premium"
	StepAdminBan      = "admin_ban"
	StepAdminUnban    = "admin_unban"
)

// ConversationState holds the user's progress in any multi-step conversation.
type ConversationState struct {
	Step string            `json:"step"`
	Data map[string]string `json:"data"` // collected answers, e.g. search_gender
}

// StateRepository is the port for managing any user's conversational state.
type StateRepository interface {
	SetState(ctx context.Context, tgID int64, state *ConversationState) error
	GetState(ctx context.Context, tgID int64) (*ConversationState, error)
	ClearState(ctx context.Context, tgID int64) error
}

// BrowseCache stores a user's current search result set and cursor so that
// Like/Next callbacks can page through it.
type BrowseCache interface {
	SetResults(ctx context.Context, tgID int64, userIDs []string) error
	// Next pops the next candidate; ok is false when the list is exhausted
	// or no search is in progress.
	Next(ctx context.Context, tgID int64) (userID string, ok bool, err error)
	Clear(ctx context.Context, tgID int64) error
}
