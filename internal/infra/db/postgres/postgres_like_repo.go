package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/repository"
)

var _ repository.LikeRepository = (*PostgresLikeRepo)(nil)

type PostgresLikeRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresLikeRepo(pool *pgxpool.Pool) *PostgresLikeRepo {
	return &PostgresLikeRepo{pool: pool}
}

func (r *PostgresLikeRepo) Save(ctx context.Context, tx repository.Tx, l *model.Like) error {
	const q = `
INSERT INTO likes (id, liker_id, liked_id, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (liker_id, liked_id) DO NOTHING;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, l.ID, l.LikerID, l.LikedID, l.CreatedAt)
	return err
}

func (r *PostgresLikeRepo) Exists(ctx context.Context, tx repository.Tx, likerID, likedID string) (bool, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = ex.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE liker_id=$1 AND liked_id=$2);`, likerID, likedID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("like exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresLikeRepo) CountReceived(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE liked_id=$1;`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}
