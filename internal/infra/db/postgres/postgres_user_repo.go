package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

const userColumns = `id, telegram_id, name, coins, premium_until, banned,
       referral_code, referred_by, created_at, last_active_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var premiumUntil *time.Time
	var referredBy *string
	err := row.Scan(&u.ID, &u.TelegramID, &u.Name, &u.Coins, &premiumUntil, &u.Banned,
		&u.ReferralCode, &referredBy, &u.CreatedAt, &u.LastActiveAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if premiumUntil != nil {
		u.PremiumUntil = *premiumUntil
	}
	if referredBy != nil {
		u.ReferredBy = *referredBy
	}
	return &u, nil
}

func (r *PostgresUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (
  id, telegram_id, name, coins, premium_until, banned,
  referral_code, referred_by, created_at, last_active_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
) ON CONFLICT (id) DO UPDATE SET
  telegram_id=$2, name=$3, coins=$4, premium_until=$5, banned=$6, last_active_at=$10;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	var premiumUntil *time.Time
	if !u.PremiumUntil.IsZero() {
		premiumUntil = &u.PremiumUntil
	}
	var referredBy *string
	if u.ReferredBy != "" {
		referredBy = &u.ReferredBy
	}
	_, err = ex.Exec(ctx, q, u.ID, u.TelegramID, u.Name, u.Coins, premiumUntil, u.Banned,
		u.ReferralCode, referredBy, u.CreatedAt, u.LastActiveAt)
	return err
}

func (r *PostgresUserRepo) FindByTelegramID(ctx context.Context, tx repository.Tx, tgID int64) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id=$1;`, tgID))
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1;`, id))
}

func (r *PostgresUserRepo) FindByReferralCode(ctx context.Context, tx repository.Tx, code string) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code=$1;`, code))
}

func (r *PostgresUserRepo) CountReferred(ctx context.Context, tx repository.Tx, code string) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE referred_by=$1;`, code).Scan(&n); err != nil {
		return 0, fmt.Errorf("count referred: %w", err)
	}
	return n, nil
}

func (r *PostgresUserRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2;`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) FindPremiumExpired(ctx context.Context, tx repository.Tx, now time.Time) ([]*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE premium_until IS NOT NULL AND premium_until < $1;`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *PostgresUserRepo) CountInactiveUsers(ctx context.Context, tx repository.Tx, since time.Time) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE last_active_at IS NULL OR last_active_at < $1;`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inactive: %w", err)
	}
	return n, nil
}
