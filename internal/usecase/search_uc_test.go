//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/repository"
	"telegram-dating-bot/internal/usecase"
)

func completeProfile(userID string, gender model.Gender, age int) *model.Profile {
	return &model.Profile{
		UserID:   userID,
		Gender:   gender,
		Age:      age,
		Bio:      "hi",
		PhotoID:  "photo-1",
		Location: "Berlin",
	}
}

func TestSearchUseCase_Search(t *testing.T) {
	ctx := context.Background()
	searcher := &model.User{ID: "u-searcher", TelegramID: 100, Name: "alice"}
	criteria := model.SearchCriteria{Gender: model.GenderMale, MinAge: 20, MaxAge: 30}

	t.Run("caches matching candidates", func(t *testing.T) {
		profiles := NewMockProfileRepo()
		browse := NewMockBrowseCache()
		mustSave := func(p *model.Profile) {
			if err := profiles.Save(ctx, nil, p); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}
		mustSave(completeProfile(searcher.ID, model.GenderFemale, 25))
		mustSave(completeProfile("u-bob", model.GenderMale, 25))
		mustSave(completeProfile("u-carl", model.GenderMale, 45)) // out of range
		mustSave(completeProfile("u-dora", model.GenderFemale, 25))

		uc := usecase.NewSearchUseCase(profiles, browse, 20, newTestLogger())
		n, err := uc.Search(ctx, searcher, criteria)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 candidate, got %d", n)
		}

		id, ok, err := uc.NextCandidate(ctx, searcher.TelegramID)
		if err != nil || !ok {
			t.Fatalf("NextCandidate: ok=%v err=%v", ok, err)
		}
		if id != "u-bob" {
			t.Errorf("expected u-bob, got %s", id)
		}
		if _, ok, _ := uc.NextCandidate(ctx, searcher.TelegramID); ok {
			t.Error("expected the cache to be exhausted")
		}
	})

	t.Run("rejects an incomplete searcher profile", func(t *testing.T) {
		profiles := NewMockProfileRepo()
		if err := profiles.Save(ctx, nil, &model.Profile{UserID: searcher.ID}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		uc := usecase.NewSearchUseCase(profiles, NewMockBrowseCache(), 20, newTestLogger())

		if _, err := uc.Search(ctx, searcher, criteria); !errors.Is(err, domain.ErrProfileIncomplete) {
			t.Errorf("expected ErrProfileIncomplete, got %v", err)
		}
	})

	t.Run("rejects invalid criteria", func(t *testing.T) {
		uc := usecase.NewSearchUseCase(NewMockProfileRepo(), NewMockBrowseCache(), 20, newTestLogger())
		bad := model.SearchCriteria{Gender: model.GenderMale, MinAge: 30, MaxAge: 20}
		if _, err := uc.Search(ctx, searcher, bad); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("empty result leaves no browse session", func(t *testing.T) {
		profiles := NewMockProfileRepo()
		if err := profiles.Save(ctx, nil, completeProfile(searcher.ID, model.GenderFemale, 25)); err != nil {
			t.Fatalf("Save: %v", err)
		}
		profiles.SearchFunc = func(context.Context, repository.Tx, string, model.SearchCriteria, int) ([]string, error) {
			return nil, nil
		}
		browse := NewMockBrowseCache()
		uc := usecase.NewSearchUseCase(profiles, browse, 20, newTestLogger())

		n, err := uc.Search(ctx, searcher, criteria)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected 0 candidates, got %d", n)
		}
		if _, ok, _ := browse.Next(ctx, searcher.TelegramID); ok {
			t.Error("expected no cached results")
		}
	})
}

func TestSearchUseCase_EndBrowse(t *testing.T) {
	ctx := context.Background()
	browse := NewMockBrowseCache()
	if err := browse.SetResults(ctx, 100, []string{"u-bob"}); err != nil {
		t.Fatalf("SetResults: %v", err)
	}
	uc := usecase.NewSearchUseCase(NewMockProfileRepo(), browse, 20, newTestLogger())

	if err := uc.EndBrowse(ctx, 100); err != nil {
		t.Fatalf("EndBrowse: %v", err)
	}
	if _, ok, _ := browse.Next(ctx, 100); ok {
		t.Error("expected the browse session to be cleared")
	}
}
