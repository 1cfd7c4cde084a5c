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

func TestLikeUseCase_Like(t *testing.T) {
	ctx := context.Background()

	seedUsers := func(t *testing.T, repo *MockUserRepo) (alice, bob *model.User) {
		t.Helper()
		var err error
		alice, err = model.NewUser("", 111, "alice", "")
		if err != nil {
			t.Fatalf("NewUser: %v", err)
		}
		bob, err = model.NewUser("", 222, "bob", "")
		if err != nil {
			t.Fatalf("NewUser: %v", err)
		}
		for _, u := range []*model.User{alice, bob} {
			if err := repo.Save(ctx, nil, u); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}
		return alice, bob
	}

	t.Run("one-sided like notifies anonymously", func(t *testing.T) {
		users := NewMockUserRepo()
		bot := &MockTelegramBot{}
		alice, bob := seedUsers(t, users)
		uc := usecase.NewLikeUseCase(NewMockLikeRepo(), users, bot, newTestLogger())

		out, err := uc.Like(ctx, alice, bob.ID)
		if err != nil {
			t.Fatalf("Like: %v", err)
		}
		if out.Match {
			t.Error("expected no match on a one-sided like")
		}

		msgs := bot.MessagesTo(bob.TelegramID)
		if len(msgs) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(msgs))
		}
		if strings.Contains(msgs[0], alice.Name) {
			t.Errorf("notification must not reveal the liker: %q", msgs[0])
		}
	})

	t.Run("mutual like produces a match and names both sides", func(t *testing.T) {
		users := NewMockUserRepo()
		bot := &MockTelegramBot{}
		alice, bob := seedUsers(t, users)
		uc := usecase.NewLikeUseCase(NewMockLikeRepo(), users, bot, newTestLogger())

		if _, err := uc.Like(ctx, alice, bob.ID); err != nil {
			t.Fatalf("first like: %v", err)
		}
		out, err := uc.Like(ctx, bob, alice.ID)
		if err != nil {
			t.Fatalf("second like: %v", err)
		}
		if !out.Match {
			t.Fatal("expected a match")
		}

		toAlice := bot.MessagesTo(alice.TelegramID)
		if len(toAlice) == 0 || !strings.Contains(toAlice[len(toAlice)-1], bob.Name) {
			t.Errorf("expected alice to learn bob's name, got %v", toAlice)
		}
		toBob := bot.MessagesTo(bob.TelegramID)
		if len(toBob) == 0 || !strings.Contains(toBob[len(toBob)-1], alice.Name) {
			t.Errorf("expected bob to learn alice's name, got %v", toBob)
		}
	})

	t.Run("repeated like does not re-notify", func(t *testing.T) {
		users := NewMockUserRepo()
		bot := &MockTelegramBot{}
		alice, bob := seedUsers(t, users)
		uc := usecase.NewLikeUseCase(NewMockLikeRepo(), users, bot, newTestLogger())

		for i := 0; i < 3; i++ {
			if _, err := uc.Like(ctx, alice, bob.ID); err != nil {
				t.Fatalf("like %d: %v", i, err)
			}
		}
		if n := len(bot.MessagesTo(bob.TelegramID)); n != 1 {
			t.Errorf("expected exactly 1 notification, got %d", n)
		}
	})

	t.Run("repeating a like on a matched pair does not re-announce", func(t *testing.T) {
		users := NewMockUserRepo()
		bot := &MockTelegramBot{}
		alice, bob := seedUsers(t, users)
		uc := usecase.NewLikeUseCase(NewMockLikeRepo(), users, bot, newTestLogger())

		if _, err := uc.Like(ctx, alice, bob.ID); err != nil {
			t.Fatalf("first like: %v", err)
		}
		if _, err := uc.Like(ctx, bob, alice.ID); err != nil {
			t.Fatalf("second like: %v", err)
		}
		aliceBefore := len(bot.MessagesTo(alice.TelegramID))
		bobBefore := len(bot.MessagesTo(bob.TelegramID))

		// A stale Like button on an old card replays the same like.
		out, err := uc.Like(ctx, alice, bob.ID)
		if err != nil {
			t.Fatalf("repeated like: %v", err)
		}
		if !out.Match {
			t.Error("expected the repeated like to still report the match")
		}
		if n := len(bot.MessagesTo(alice.TelegramID)); n != aliceBefore {
			t.Errorf("alice was re-notified: %d messages, was %d", n, aliceBefore)
		}
		if n := len(bot.MessagesTo(bob.TelegramID)); n != bobBefore {
			t.Errorf("bob was re-notified: %d messages, was %d", n, bobBefore)
		}
	})

	t.Run("self-like is rejected", func(t *testing.T) {
		users := NewMockUserRepo()
		alice, _ := seedUsers(t, users)
		uc := usecase.NewLikeUseCase(NewMockLikeRepo(), users, &MockTelegramBot{}, newTestLogger())

		if _, err := uc.Like(ctx, alice, alice.ID); !errors.Is(err, domain.ErrSelfLike) {
			t.Errorf("expected ErrSelfLike, got %v", err)
		}
	})

	t.Run("liking an unknown user fails", func(t *testing.T) {
		users := NewMockUserRepo()
		alice, _ := seedUsers(t, users)
		uc := usecase.NewLikeUseCase(NewMockLikeRepo(), users, &MockTelegramBot{}, newTestLogger())

		if _, err := uc.Like(ctx, alice, "u-ghost"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("send failure does not fail the like", func(t *testing.T) {
		users := NewMockUserRepo()
		bot := &MockTelegramBot{
			SendMessageFunc: func(context.Context, int64, string) error {
				return errors.New("blocked by user")
			},
		}
		alice, bob := seedUsers(t, users)
		uc := usecase.NewLikeUseCase(NewMockLikeRepo(), users, bot, newTestLogger())

		if _, err := uc.Like(ctx, alice, bob.ID); err != nil {
			t.Errorf("expected the like to succeed despite send failure, got %v", err)
		}
	})
}
