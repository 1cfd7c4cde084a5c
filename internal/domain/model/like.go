package model

import (
	"time"

	"telegram-dating-bot/internal/domain"

	"github.com/oklog/ulid/v2"
)

// Like records one user liking another's profile. A reciprocal pair of likes
// forms a match.
type Like struct {
	ID        string // ULID, sortable by creation time
	LikerID   string
	LikedID   string
	CreatedAt time.Time
}

func NewLike(likerID, likedID string) (*Like, error) {
	if likerID == "" || likedID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if likerID == likedID {
		return nil, domain.ErrSelfLike
	}
	return &Like{
		ID:        ulid.Make().String(),
		LikerID:   likerID,
		LikedID:   likedID,
		CreatedAt: time.Now(),
	}, nil
}

// Match is the derived pairing of two users who liked each other.
type Match struct {
	UserA     string
	UserB     string
	MatchedAt time.Time
}
