package usecase

import (
	"context"
	"time"

	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

var _ StatsUseCase = (*statsUC)(nil)

// Stats is the snapshot served by the admin web API.
type Stats struct {
	TotalUsers    int `json:"total_users"`
	InactiveUsers int `json:"inactive_users"`
}

type StatsUseCase interface {
	Snapshot(ctx context.Context, inactiveWindow time.Duration) (*Stats, error)
}

type statsUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewStatsUseCase(users repository.UserRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{users: users, log: logger}
}

func (s *statsUC) Snapshot(ctx context.Context, inactiveWindow time.Duration) (*Stats, error) {
	defer logging.TraceDuration(s.log, "StatsUC.Snapshot")()

	if inactiveWindow <= 0 {
		inactiveWindow = 30 * 24 * time.Hour
	}
	total, err := s.users.CountUsers(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	inactive, err := s.users.CountInactiveUsers(ctx, repository.NoTX, time.Now().Add(-inactiveWindow))
	if err != nil {
		return nil, err
	}
	return &Stats{TotalUsers: total, InactiveUsers: inactive}, nil
}
