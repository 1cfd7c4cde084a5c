//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"telegram-dating-bot/internal/domain"
)

// --- User Model Tests ---

func TestNewUser(t *testing.T) {
	t.Run("should create a new user successfully", func(t *testing.T) {
		startTime := time.Now()
		user, err := NewUser("", 12345, "testuser", "")

		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if user == nil {
			t.Fatal("expected user to be non-nil, but got nil")
		}
		if user.ID == "" {
			t.Error("expected user ID to be non-empty")
		}
		if user.TelegramID != 12345 {
			t.Errorf("expected telegram ID to be 12345, but got %d", user.TelegramID)
		}
		if user.Coins != StartingCoins {
			t.Errorf("expected starting balance of %d coins, got %d", StartingCoins, user.Coins)
		}
		if len(user.ReferralCode) != 8 {
			t.Errorf("expected an 8-character referral code, got %q", user.ReferralCode)
		}
		if user.Premium() {
			t.Error("new users must not be premium")
		}
		if time.Since(startTime) > time.Second {
			t.Errorf("user.CreatedAt timestamp is too far from current time")
		}
	})

	t.Run("should fail with invalid telegram ID", func(t *testing.T) {
		user, err := NewUser("", 0, "testuser", "")
		if err == nil {
			t.Fatal("expected an error for invalid telegram ID, but got nil")
		}
		if user != nil {
			t.Errorf("expected user to be nil on error, but it was not")
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected error to be ErrInvalidArgument, but got %T", err)
		}
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := NewUser("", 12345, "  ", "")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should keep the referrer code as given", func(t *testing.T) {
		user, err := NewUser("", 12345, "testuser", "abcd1234")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if user.ReferredBy != "abcd1234" {
			t.Errorf("expected ReferredBy to be 'abcd1234', got %q", user.ReferredBy)
		}
	})
}

func TestUser_GrantPremium(t *testing.T) {
	t.Run("should activate premium from now", func(t *testing.T) {
		user, _ := NewUser("", 1, "u", "")
		user.GrantPremium(30 * 24 * time.Hour)
		if !user.Premium() {
			t.Fatal("expected premium to be active after grant")
		}
		if until := time.Until(user.PremiumUntil); until < 29*24*time.Hour {
			t.Errorf("expected roughly 30 days of premium, got %v", until)
		}
	})

	t.Run("should stack on an existing grant", func(t *testing.T) {
		user, _ := NewUser("", 1, "u", "")
		user.GrantPremium(24 * time.Hour)
		first := user.PremiumUntil
		user.GrantPremium(24 * time.Hour)
		if !user.PremiumUntil.After(first) {
			t.Error("expected second grant to extend the first")
		}
	})
}

func TestUser_AddCoins(t *testing.T) {
	user, _ := NewUser("", 1, "u", "")

	if err := user.AddCoins(50); err != nil {
		t.Fatalf("AddCoins failed: %v", err)
	}
	if user.Coins != StartingCoins+50 {
		t.Errorf("expected %d coins, got %d", StartingCoins+50, user.Coins)
	}

	if err := user.AddCoins(-(user.Coins + 1)); !errors.Is(err, domain.ErrInsufficientCoins) {
		t.Errorf("expected ErrInsufficientCoins, got %v", err)
	}
}

// --- Profile Model Tests ---

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"Male":   GenderMale,
		"female": GenderFemale,
		" Other": GenderOther,
	}
	for in, want := range cases {
		got, err := ParseGender(in)
		if err != nil {
			t.Errorf("ParseGender(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseGender(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseGender("robot"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown gender, got %v", err)
	}
}

func TestProfile_SetAge(t *testing.T) {
	p, err := NewProfile("user-1")
	if err != nil {
		t.Fatalf("NewProfile failed: %v", err)
	}
	if err := p.SetAge(17); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for age 17, got %v", err)
	}
	if err := p.SetAge(100); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for age 100, got %v", err)
	}
	if err := p.SetAge(25); err != nil {
		t.Errorf("expected age 25 to be accepted, got %v", err)
	}
}

func TestProfile_Complete(t *testing.T) {
	p, _ := NewProfile("user-1")
	if p.Complete() {
		t.Fatal("empty profile must not be complete")
	}
	p.Gender = GenderFemale
	p.Age = 30
	p.Bio = "hello"
	p.PhotoID = "file-123"
	if p.Complete() {
		t.Fatal("profile without location must not be complete")
	}
	p.Location = "Lisbon"
	if !p.Complete() {
		t.Fatal("fully filled profile must be complete")
	}
}

func TestSearchCriteria_Validate(t *testing.T) {
	ok := SearchCriteria{Gender: GenderMale, MinAge: 20, MaxAge: 35}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid criteria rejected: %v", err)
	}

	bad := []SearchCriteria{
		{Gender: "unknown", MinAge: 20, MaxAge: 35},
		{Gender: GenderMale, MinAge: 17, MaxAge: 35},
		{Gender: GenderMale, MinAge: 30, MaxAge: 25},
		{Gender: GenderMale, MinAge: 20, MaxAge: 120},
	}
	for i, c := range bad {
		if err := c.Validate(); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
}

// --- Like Model Tests ---

func TestNewLike(t *testing.T) {
	like, err := NewLike("a", "b")
	if err != nil {
		t.Fatalf("NewLike failed: %v", err)
	}
	if like.ID == "" {
		t.Error("expected a non-empty like ID")
	}

	if _, err := NewLike("a", "a"); !errors.Is(err, domain.ErrSelfLike) {
		t.Errorf("expected ErrSelfLike, got %v", err)
	}
	if _, err := NewLike("", "b"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
