package repository

import (
	"context"

	"telegram-dating-bot/internal/domain/model"
)

// -----------------------------
// Likes
// -----------------------------

type LikeRepository interface {
	// Save stores a like. Saving the same (liker, liked) pair twice is not an
	// error; the first record wins.
	Save(ctx context.Context, tx Tx, l *model.Like) error
	Exists(ctx context.Context, tx Tx, likerID, likedID string) (bool, error)
	CountReceived(ctx context.Context, tx Tx, userID string) (int, error)
}
