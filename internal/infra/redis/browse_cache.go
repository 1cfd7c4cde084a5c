package redis

import (
	"context"
	"fmt"
	"time"

	"telegram-dating-bot/internal/domain/ports/repository"
)

var _ repository.BrowseCache = (*BrowseCacheRepo)(nil)

// BrowseCacheRepo keeps the candidate queue from a user's last search, so
// Like/Next callbacks page through it without re-querying. The queue is a
// Redis list and Next pops with LPOP, so concurrent taps on the same card
// can never serve the same candidate twice.
type BrowseCacheRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewBrowseCache(client RedisClient, ttl time.Duration) *BrowseCacheRepo {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &BrowseCacheRepo{client: client, ttl: ttl}
}

func (b *BrowseCacheRepo) key(tgID int64) string {
	return fmt.Sprintf("browse:%d", tgID)
}

func (b *BrowseCacheRepo) SetResults(ctx context.Context, tgID int64, userIDs []string) error {
	key := b.key(tgID)
	if err := b.client.Del(ctx, key); err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	vals := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		vals[i] = id
	}
	if err := b.client.RPush(ctx, key, vals...); err != nil {
		return err
	}
	return b.client.Expire(ctx, key, b.ttl)
}

func (b *BrowseCacheRepo) Next(ctx context.Context, tgID int64) (string, bool, error) {
	id, err := b.client.LPop(ctx, b.key(tgID))
	if err != nil {
		if IsNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}

func (b *BrowseCacheRepo) Clear(ctx context.Context, tgID int64) error {
	return b.client.Del(ctx, b.key(tgID))
}
