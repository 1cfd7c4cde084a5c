package usecase

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

var _ ProfileUseCase = (*profileUC)(nil)

// ProfileCard is a rendered profile: HTML text plus the photo to attach.
type ProfileCard struct {
	Text    string
	PhotoID string
}

// ProfileUseCase drives the step-by-step profile creation flow and renders
// profile cards. Each Set* validates the raw answer the user typed.
type ProfileUseCase interface {
	SetGender(ctx context.Context, userID, answer string) error
	SetAge(ctx context.Context, userID, answer string) error
	SetBio(ctx context.Context, userID, answer string) error
	SetPhoto(ctx context.Context, userID, fileID string) error
	SetLocation(ctx context.Context, userID, answer string) error
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Card(ctx context.Context, userID string) (*ProfileCard, error)
}

type profileUC struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	log      *zerolog.Logger
}

func NewProfileUseCase(profiles repository.ProfileRepository, users repository.UserRepository, logger *zerolog.Logger) *profileUC {
	return &profileUC{profiles: profiles, users: users, log: logger}
}

func (p *profileUC) SetGender(ctx context.Context, userID, answer string) error {
	defer logging.TraceDuration(p.log, "ProfileUC.SetGender")()
	gender, err := model.ParseGender(answer)
	if err != nil {
		return err
	}
	return p.update(ctx, userID, func(prof *model.Profile) error {
		prof.Gender = gender
		return nil
	})
}

func (p *profileUC) SetAge(ctx context.Context, userID, answer string) error {
	defer logging.TraceDuration(p.log, "ProfileUC.SetAge")()
	age, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return domain.ErrInvalidArgument
	}
	return p.update(ctx, userID, func(prof *model.Profile) error {
		return prof.SetAge(age)
	})
}

func (p *profileUC) SetBio(ctx context.Context, userID, answer string) error {
	defer logging.TraceDuration(p.log, "ProfileUC.SetBio")()
	bio := strings.TrimSpace(answer)
	if bio == "" {
		return domain.ErrInvalidArgument
	}
	return p.update(ctx, userID, func(prof *model.Profile) error {
		prof.Bio = bio
		return nil
	})
}

func (p *profileUC) SetPhoto(ctx context.Context, userID, fileID string) error {
	defer logging.TraceDuration(p.log, "ProfileUC.SetPhoto")()
	if fileID == "" {
		return domain.ErrInvalidArgument
	}
	return p.update(ctx, userID, func(prof *model.Profile) error {
		prof.PhotoID = fileID
		return nil
	})
}

func (p *profileUC) SetLocation(ctx context.Context, userID, answer string) error {
	defer logging.TraceDuration(p.log, "ProfileUC.SetLocation")()
	loc := strings.TrimSpace(answer)
	if loc == "" {
		return domain.ErrInvalidArgument
	}
	return p.update(ctx, userID, func(prof *model.Profile) error {
		prof.Location = loc
		return nil
	})
}

func (p *profileUC) update(ctx context.Context, userID string, mutate func(*model.Profile) error) error {
	prof, err := p.profiles.FindByUserID(ctx, repository.NoTX, userID)
	if err != nil {
		return err
	}
	if err := mutate(prof); err != nil {
		return err
	}
	return p.profiles.Save(ctx, repository.NoTX, prof)
}

func (p *profileUC) Get(ctx context.Context, userID string) (*model.Profile, error) {
	defer logging.TraceDuration(p.log, "ProfileUC.Get")()
	return p.profiles.FindByUserID(ctx, repository.NoTX, userID)
}

// Card renders the HTML profile card shown in chat.
func (p *profileUC) Card(ctx context.Context, userID string) (*ProfileCard, error) {
	defer logging.TraceDuration(p.log, "ProfileUC.Card")()

	user, err := p.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	prof, err := p.profiles.FindByUserID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}

	premium := "No"
	if user.Premium() {
		premium = "Yes"
	}
	text := fmt.Sprintf(
		"<b>Name:</b> %s\n<b>Gender:</b> %s\n<b>Age:</b> %d\n<b>Bio:</b> %s\n<b>Location:</b> %s\n<b>Coins:</b> %d\n<b>Premium:</b> %s",
		html.EscapeString(user.Name),
		prof.Gender,
		prof.Age,
		html.EscapeString(prof.Bio),
		html.EscapeString(prof.Location),
		user.Coins,
		premium,
	)
	return &ProfileCard{Text: text, PhotoID: prof.PhotoID}, nil
}
