//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-dating-bot/internal/domain"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/adapter"
	"telegram-dating-bot/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// ---- Mock TransactionManager ----

type MockTxManager struct{}

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

// ---- Mock UserRepository ----

// MockUserRepo is an in-memory repository; any Func field overrides the
// default behavior for that method.
type MockUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.User // by internal ID

	SaveFunc             func(ctx context.Context, tx repository.Tx, u *model.User) error
	FindByTelegramIDFunc func(ctx context.Context, tx repository.Tx, tgID int64) (*model.User, error)
	FindByIDFunc         func(ctx context.Context, tx repository.Tx, id string) (*model.User, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{store: make(map[string]*model.User)}
}

func (m *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *MockUserRepo) FindByTelegramID(ctx context.Context, tx repository.Tx, tgID int64) (*model.User, error) {
	if m.FindByTelegramIDFunc != nil {
		return m.FindByTelegramIDFunc(ctx, tx, tgID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.TelegramID == tgID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) FindByReferralCode(ctx context.Context, tx repository.Tx, code string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.ReferralCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) CountReferred(ctx context.Context, tx repository.Tx, code string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, u := range m.store {
		if u.ReferredBy == code {
			n++
		}
	}
	return n, nil
}

func (m *MockUserRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, u := range m.store {
		cp := *u
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockUserRepo) FindPremiumExpired(ctx context.Context, tx repository.Tx, now time.Time) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, u := range m.store {
		if !u.PremiumUntil.IsZero() && u.PremiumUntil.Before(now) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *MockUserRepo) CountInactiveUsers(ctx context.Context, tx repository.Tx, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, u := range m.store {
		if u.LastActiveAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// ---- Mock ProfileRepository ----

type MockProfileRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Profile

	SearchFunc func(ctx context.Context, tx repository.Tx, searcherID string, c model.SearchCriteria, limit int) ([]string, error)
}

var _ repository.ProfileRepository = (*MockProfileRepo)(nil)

func NewMockProfileRepo() *MockProfileRepo {
	return &MockProfileRepo{store: make(map[string]*model.Profile)}
}

func (m *MockProfileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.UserID] = &cp
	return nil
}

func (m *MockProfileRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProfileRepo) Search(ctx context.Context, tx repository.Tx, searcherID string, c model.SearchCriteria, limit int) ([]string, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, tx, searcherID, c, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for id, p := range m.store {
		if id == searcherID || !p.Complete() {
			continue
		}
		if p.Gender == c.Gender && p.Age >= c.MinAge && p.Age <= c.MaxAge {
			out = append(out, id)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ---- Mock LikeRepository ----

type MockLikeRepo struct {
	mu    sync.RWMutex
	pairs map[[2]string]*model.Like
}

var _ repository.LikeRepository = (*MockLikeRepo)(nil)

func NewMockLikeRepo() *MockLikeRepo {
	return &MockLikeRepo{pairs: make(map[[2]string]*model.Like)}
}

func (m *MockLikeRepo) Save(ctx context.Context, tx repository.Tx, l *model.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{l.LikerID, l.LikedID}
	if _, ok := m.pairs[key]; !ok {
		cp := *l
		m.pairs[key] = &cp
	}
	return nil
}

func (m *MockLikeRepo) Exists(ctx context.Context, tx repository.Tx, likerID, likedID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.pairs[[2]string{likerID, likedID}]
	return ok, nil
}

func (m *MockLikeRepo) CountReceived(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for key := range m.pairs {
		if key[1] == userID {
			n++
		}
	}
	return n, nil
}

// ---- Mock BrowseCache ----

type MockBrowseCache struct {
	mu      sync.Mutex
	results map[int64][]string
	cursor  map[int64]int
}

var _ repository.BrowseCache = (*MockBrowseCache)(nil)

func NewMockBrowseCache() *MockBrowseCache {
	return &MockBrowseCache{results: make(map[int64][]string), cursor: make(map[int64]int)}
}

func (m *MockBrowseCache) SetResults(ctx context.Context, tgID int64, userIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[tgID] = userIDs
	m.cursor[tgID] = 0
	return nil
}

func (m *MockBrowseCache) Next(ctx context.Context, tgID int64) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := m.results[tgID]
	i := m.cursor[tgID]
	if i >= len(rs) {
		return "", false, nil
	}
	m.cursor[tgID] = i + 1
	return rs[i], true, nil
}

func (m *MockBrowseCache) Clear(ctx context.Context, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.results, tgID)
	delete(m.cursor, tgID)
	return nil
}

// ---- Mock TelegramBotAdapter ----

type sentMessage struct {
	TgID int64
	Text string
}

type MockTelegramBot struct {
	mu   sync.Mutex
	Sent []sentMessage

	SendMessageFunc func(ctx context.Context, tgID int64, text string) error
}

var _ adapter.TelegramBotAdapter = (*MockTelegramBot)(nil)

func (m *MockTelegramBot) SendMessage(ctx context.Context, tgID int64, text string) error {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, tgID, text)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMessage{TgID: tgID, Text: text})
	return nil
}

func (m *MockTelegramBot) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	return m.SendMessage(ctx, tgID, text)
}

func (m *MockTelegramBot) SendPhoto(ctx context.Context, tgID int64, fileID, caption string, rows [][]adapter.InlineButton) error {
	return m.SendMessage(ctx, tgID, caption)
}

func (m *MockTelegramBot) MessagesTo(tgID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, s := range m.Sent {
		if s.TgID == tgID {
			out = append(out, s.Text)
		}
	}
	return out
}
