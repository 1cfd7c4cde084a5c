package repository

import (
	"context"

	"telegram-dating-bot/internal/domain/model"
)

// -----------------------------
// Profiles
// -----------------------------

type ProfileRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Profile) error
	FindByUserID(ctx context.Context, tx Tx, userID string) (*model.Profile, error)
	// Search returns user IDs of complete, non-banned profiles matching the
	// criteria, excluding searcherID, in random order, capped at limit.
	Search(ctx context.Context, tx Tx, searcherID string, c model.SearchCriteria, limit int) ([]string, error)
}
