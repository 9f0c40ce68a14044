package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"aurora/web/internal/config"
	"aurora/web/internal/store"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTSecret:     "test-secret",
			UserTokenTTL:  time.Hour,
			AdminTokenTTL: 24 * time.Hour,
			AdminEmail:    "smokyapplemc@gmail.com",
			AdminPassword: "qwe123zx",
		},
		Vote: config.VoteConfig{Cooldown: 24 * time.Hour},
		Status: config.StatusConfig{
			RefreshInterval: 30 * time.Second,
			MaxPlayers:      500,
			ServerAddress:   "play.auroramc.net",
		},
	}
}

func testAdmin(recordStore store.RecordStore, cfg *config.AppConfig) *AdminService {
	return NewAdminService(recordStore, StaticAdminCredentials{
		Email:    cfg.Security.AdminEmail,
		Password: cfg.Security.AdminPassword,
	}, cfg, zerolog.Nop())
}

// flakyStore fails the next failGets reads, then behaves like the
// wrapped store. Models a store that is briefly unreachable at
// startup.
type flakyStore struct {
	store.RecordStore
	mu       sync.Mutex
	failGets int
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	if s.failGets > 0 {
		s.failGets--
		s.mu.Unlock()
		return nil, errors.New("store unavailable")
	}
	s.mu.Unlock()
	return s.RecordStore.Get(ctx, key)
}

// memoryCooldowns is a CooldownKeeper for tests, mirroring the redis
// TTL behavior without a server.
type memoryCooldowns struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func newMemoryCooldowns() *memoryCooldowns {
	return &memoryCooldowns{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *memoryCooldowns) Acquire(_ context.Context, userID, siteID string, ttl time.Duration) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := userID + "/" + siteID
	now := m.now()
	if expiry, ok := m.expires[key]; ok && expiry.After(now) {
		return false, expiry.Sub(now), nil
	}
	m.expires[key] = now.Add(ttl)
	return true, 0, nil
}

func (m *memoryCooldowns) Remaining(_ context.Context, userID, siteID string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := userID + "/" + siteID
	now := m.now()
	if expiry, ok := m.expires[key]; ok && expiry.After(now) {
		return expiry.Sub(now), nil
	}
	return 0, nil
}
