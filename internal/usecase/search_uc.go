package usecase

import (
	"context"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/infra/logging"
	"telegram-dating-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ SearchUseCase = (*searchUC)(nil)

// SearchUseCase runs profile searches and pages through the results.
// The candidate list lives in the browse cache keyed by the searcher's
// Telegram ID, so Like/Next callbacks can consume it one profile at a time.
type SearchUseCase interface {
	// Search queries candidates for the user and caches them. Returns the
	// number of candidates found. Fails with ErrProfileIncomplete when the
	// searcher has not finished their own profile.
	Search(ctx context.Context, searcher *model.User, c model.SearchCriteria) (int, error)
	// NextCandidate pops the next cached candidate for this Telegram user.
	NextCandidate(ctx context.Context, tgID int64) (userID string, ok bool, err error)
	EndBrowse(ctx context.Context, tgID int64) error
}

type searchUC struct {
	profiles repository.ProfileRepository
	browse   repository.BrowseCache
	limit    int
	log      *zerolog.Logger
}

func NewSearchUseCase(profiles repository.ProfileRepository, browse repository.BrowseCache, limit int, logger *zerolog.Logger) *searchUC {
	if limit <= 0 {
		limit = 20
	}
	return &searchUC{profiles: profiles, browse: browse, limit: limit, log: logger}
}

func (s *searchUC) Search(ctx context.Context, searcher *model.User, c model.SearchCriteria) (int, error) {
	defer logging.TraceDuration(s.log, "SearchUC.Search")()

	if err := c.Validate(); err != nil {
		return 0, err
	}
	own, err := s.profiles.FindByUserID(ctx, repository.NoTX, searcher.ID)
	if err != nil {
		return 0, err
	}
	if !own.Complete() {
		return 0, domain.ErrProfileIncomplete
	}

	ids, err := s.profiles.Search(ctx, repository.NoTX, searcher.ID, c, s.limit)
	if err != nil {
		return 0, err
	}
	metrics.ObserveSearch(len(ids))

	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.browse.SetResults(ctx, searcher.TelegramID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *searchUC) NextCandidate(ctx context.Context, tgID int64) (string, bool, error) {
	defer logging.TraceDuration(s.log, "SearchUC.NextCandidate")()
	return s.browse.Next(ctx, tgID)
}

func (s *searchUC) EndBrowse(ctx context.Context, tgID int64) error {
	return s.browse.Clear(ctx, tgID)
}
