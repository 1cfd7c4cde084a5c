package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/repository"
)

var _ repository.ProfileRepository = (*PostgresProfileRepo)(nil)

type PostgresProfileRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileRepo(pool *pgxpool.Pool) *PostgresProfileRepo {
	return &PostgresProfileRepo{pool: pool}
}

func (r *PostgresProfileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	const q = `
INSERT INTO profiles (user_id, gender, age, bio, photo_id, location)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (user_id) DO UPDATE SET
  gender=$2, age=$3, bio=$4, photo_id=$5, location=$6;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, p.UserID, nullIfEmpty(string(p.Gender)), nullIfZero(p.Age),
		nullIfEmpty(p.Bio), nullIfEmpty(p.PhotoID), nullIfEmpty(p.Location))
	return err
}

func (r *PostgresProfileRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	const q = `
SELECT user_id, gender, age, bio, photo_id, location
  FROM profiles WHERE user_id=$1;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}

	var p model.Profile
	var gender, bio, photoID, location *string
	var age *int
	if err := ex.QueryRow(ctx, q, userID).Scan(&p.UserID, &gender, &age, &bio, &photoID, &location); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if gender != nil {
		p.Gender = model.Gender(*gender)
	}
	if age != nil {
		p.Age = *age
	}
	if bio != nil {
		p.Bio = *bio
	}
	if photoID != nil {
		p.PhotoID = *photoID
	}
	if location != nil {
		p.Location = *location
	}
	return &p, nil
}

// Search keeps the original ranking: random order for variety, capped.
func (r *PostgresProfileRepo) Search(ctx context.Context, tx repository.Tx, searcherID string, c model.SearchCriteria, limit int) ([]string, error) {
	const q = `
SELECT p.user_id
  FROM profiles p
  JOIN users u ON p.user_id = u.id
 WHERE p.gender = $1
   AND p.age BETWEEN $2 AND $3
   AND p.user_id != $4
   AND u.banned = FALSE
   AND p.photo_id IS NOT NULL
   AND p.location IS NOT NULL
 ORDER BY RANDOM()
 LIMIT $5;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, string(c.Gender), c.MinAge, c.MaxAge, searcherID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
