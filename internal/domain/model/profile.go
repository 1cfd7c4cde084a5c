package model

import (
	"strings"

	"telegram-dating-bot/internal/domain"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Age bounds enforced on profiles and on search criteria.
const (
	MinAge = 18
	MaxAge = 99
)

// ParseGender accepts the labels shown on the bot's keyboards.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "other":
		return GenderOther, nil
	default:
		return "", domain.ErrInvalidArgument
	}
}

// Profile holds the dating card a user fills in step by step after /start.
// Fields are zero until the corresponding step completes.
type Profile struct {
	UserID   string
	Gender   Gender
	Age      int
	Bio      string
	PhotoID  string // Telegram file_id of the profile photo
	Location string
}

func NewProfile(userID string) (*Profile, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Profile{UserID: userID}, nil
}

func (p *Profile) SetAge(age int) error {
	if age < MinAge || age > MaxAge {
		return domain.ErrInvalidArgument
	}
	p.Age = age
	return nil
}

// Complete reports whether every registration step has been filled in.
// The bot refuses search and likes for incomplete profiles.
func (p *Profile) Complete() bool {
	return p != nil &&
		p.Gender != "" &&
		p.Age >= MinAge &&
		p.Bio != "" &&
		p.PhotoID != "" &&
		p.Location != ""
}

// SearchCriteria is what a user asks for when browsing profiles.
type SearchCriteria struct {
	Gender Gender
	MinAge int
	MaxAge int
}

func (c SearchCriteria) Validate() error {
	if c.Gender != GenderMale && c.Gender != GenderFemale && c.Gender != GenderOther {
		return domain.ErrInvalidArgument
	}
	if c.MinAge < MinAge || c.MinAge > MaxAge {
		return domain.ErrInvalidArgument
	}
	if c.MaxAge < c.MinAge || c.MaxAge > MaxAge {
		return domain.ErrInvalidArgument
	}
	return nil
}
