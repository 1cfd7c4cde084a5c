package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Schema creates the bot's tables. Idempotent; cmd/seed and the integration
// tests both run it.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    telegram_id BIGINT UNIQUE NOT NULL,
    name TEXT NOT NULL,
    coins INTEGER NOT NULL DEFAULT 100,
    premium_until TIMESTAMP WITH TIME ZONE,
    banned BOOLEAN NOT NULL DEFAULT FALSE,
    referral_code TEXT UNIQUE NOT NULL,
    referred_by TEXT,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    last_active_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profiles (
    user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    gender TEXT,
    age INTEGER,
    bio TEXT,
    photo_id TEXT,
    location TEXT
);

CREATE TABLE IF NOT EXISTS likes (
    id TEXT NOT NULL,
    liker_id UUID REFERENCES users(id) ON DELETE CASCADE,
    liked_id UUID REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    PRIMARY KEY (liker_id, liked_id)
);

CREATE INDEX IF NOT EXISTS idx_profiles_search ON profiles (gender, age);
CREATE INDEX IF NOT EXISTS idx_likes_liked ON likes (liked_id);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
