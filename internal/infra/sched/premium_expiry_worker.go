package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/infra/metrics"
)

// PremiumExpiryWorker periodically clears premium grants that have lapsed so
// stale flags never linger in profile cards or search.
type PremiumExpiryWorker struct {
	interval time.Duration
	users    repository.UserRepository
	log      *zerolog.Logger
}

func NewPremiumExpiryWorker(interval time.Duration, users repository.UserRepository, logger *zerolog.Logger) *PremiumExpiryWorker {
	wl := logger.With().Str("component", "PremiumExpiryWorker").Logger()
	return &PremiumExpiryWorker{
		interval: interval,
		users:    users,
		log:      &wl,
	}
}

func (w *PremiumExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting premium expiry worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping premium expiry worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.sweep(ctx)
			if err != nil {
				w.log.Error().Err(err).Msg("premium expiry sweep failed")
			}
			if n > 0 {
				metrics.AddPremiumExpired(n)
				w.log.Info().Int("count", n).Msg("expired premium grants cleared")
			}
		}
	}
}

func (w *PremiumExpiryWorker) sweep(ctx context.Context) (int, error) {
	expired, err := w.users.FindPremiumExpired(ctx, repository.NoTX, time.Now())
	if err != nil {
		return 0, err
	}
	cleared := 0
	for _, u := range expired {
		u.PremiumUntil = time.Time{}
		if err := w.users.Save(ctx, repository.NoTX, u); err != nil {
			w.log.Error().Err(err).Str("user_id", u.ID).Msg("failed to clear premium")
			continue
		}
		cleared++
	}
	return cleared, nil
}
