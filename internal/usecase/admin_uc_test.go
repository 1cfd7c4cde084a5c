//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/usecase"
)

func TestAdminUseCase(t *testing.T) {
	ctx := context.Background()

	newFixture := func(t *testing.T) (*MockUserRepo, *MockTelegramBot, usecase.AdminUseCase, *model.User) {
		t.Helper()
		users := NewMockUserRepo()
		bot := &MockTelegramBot{}
		target, err := model.NewUser("", 555, "bob", "")
		if err != nil {
			t.Fatalf("NewUser: %v", err)
		}
		if err := users.Save(ctx, nil, target); err != nil {
			t.Fatalf("Save: %v", err)
		}
		return users, bot, usecase.NewAdminUseCase(users, bot, 30, newTestLogger()), target
	}

	t.Run("grant coins updates the balance and notifies", func(t *testing.T) {
		users, bot, uc, target := newFixture(t)

		if err := uc.GrantCoins(ctx, target.TelegramID, 40); err != nil {
			t.Fatalf("GrantCoins: %v", err)
		}
		got, _ := users.FindByID(ctx, nil, target.ID)
		if got.Coins != model.StartingCoins+40 {
			t.Errorf("expected %d coins, got %d", model.StartingCoins+40, got.Coins)
		}
		if msgs := bot.MessagesTo(target.TelegramID); len(msgs) != 1 || !strings.Contains(msgs[0], "40 coins") {
			t.Errorf("unexpected notification: %v", msgs)
		}
	})

	t.Run("grant coins cannot drive the balance negative", func(t *testing.T) {
		users, _, uc, target := newFixture(t)

		err := uc.GrantCoins(ctx, target.TelegramID, -(model.StartingCoins + 1))
		if !errors.Is(err, domain.ErrInsufficientCoins) {
			t.Fatalf("expected ErrInsufficientCoins, got %v", err)
		}
		got, _ := users.FindByID(ctx, nil, target.ID)
		if got.Coins != model.StartingCoins {
			t.Errorf("balance must be unchanged, got %d", got.Coins)
		}
	})

	t.Run("grant premium defaults the duration", func(t *testing.T) {
		users, _, uc, target := newFixture(t)

		if err := uc.GrantPremium(ctx, target.TelegramID, 0); err != nil {
			t.Fatalf("GrantPremium: %v", err)
		}
		got, _ := users.FindByID(ctx, nil, target.ID)
		if !got.Premium() {
			t.Error("expected the user to be premium")
		}
	})

	t.Run("ban and unban flip the flag", func(t *testing.T) {
		users, _, uc, target := newFixture(t)

		if err := uc.Ban(ctx, target.TelegramID); err != nil {
			t.Fatalf("Ban: %v", err)
		}
		got, _ := users.FindByID(ctx, nil, target.ID)
		if !got.Banned {
			t.Fatal("expected the user to be banned")
		}

		if err := uc.Unban(ctx, target.TelegramID); err != nil {
			t.Fatalf("Unban: %v", err)
		}
		got, _ = users.FindByID(ctx, nil, target.ID)
		if got.Banned {
			t.Error("expected the user to be unbanned")
		}
	})

	t.Run("unknown target fails", func(t *testing.T) {
		_, _, uc, _ := newFixture(t)
		if err := uc.Ban(ctx, 999999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list users defaults the page size", func(t *testing.T) {
		_, _, uc, _ := newFixture(t)
		list, err := uc.ListUsers(ctx, 0, 0)
		if err != nil {
			t.Fatalf("ListUsers: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("expected 1 user, got %d", len(list))
		}
	})
}
