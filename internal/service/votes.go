package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"aurora/web/internal/config"
	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

const votesKey = "aurora:votes"

var ErrUnknownSite = errors.New("unknown vote site")

// CooldownError reports a vote attempt inside the cooldown window.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("vote cooldown active, %s remaining", e.Remaining.Round(time.Second))
}

// CooldownKeeper claims and inspects per-user vote cooldown slots.
// Production uses the redis-backed cache.Cooldowns.
type CooldownKeeper interface {
	Acquire(ctx context.Context, userID, siteID string, ttl time.Duration) (bool, time.Duration, error)
	Remaining(ctx context.Context, userID, siteID string) (time.Duration, error)
}

type VoteService struct {
	store     store.RecordStore
	cooldowns CooldownKeeper
	cfg       *config.AppConfig
	mu        sync.Mutex
}

func NewVoteService(recordStore store.RecordStore, cooldowns CooldownKeeper, cfg *config.AppConfig) *VoteService {
	return &VoteService{
		store:     recordStore,
		cooldowns: cooldowns,
		cfg:       cfg,
	}
}

// Sites returns the fixed vote site listing.
func (s *VoteService) Sites() []models.VoteSite {
	return []models.VoteSite{
		{
			ID:          "planetminecraft",
			Name:        "Planet Minecraft",
			URL:         "https://www.planetminecraft.com/server/aurora-mc/vote/",
			Description: "Vote on Planet Minecraft and help us reach more players!",
		},
		{
			ID:          "minecraftservers",
			Name:        "Minecraft-Servers.net",
			URL:         "https://minecraft-servers.net/server/aurora-mc/vote/",
			Description: "Support us on Minecraft-Servers.net for awesome rewards!",
		},
		{
			ID:          "topminecraftservers",
			Name:        "TopMinecraftServers",
			URL:         "https://topminecraftservers.org/server/aurora-mc/vote/",
			Description: "Help us climb the rankings on TopMinecraftServers!",
		},
		{
			ID:          "minecraftserverlist",
			Name:        "Minecraft Server List",
			URL:         "https://minecraftserverlist.eu/server/aurora-mc/vote/",
			Description: "Vote on Minecraft Server List and get exclusive rewards!",
		},
	}
}

func (s *VoteService) knownSite(siteID string) bool {
	for _, site := range s.Sites() {
		if site.ID == siteID {
			return true
		}
	}
	return false
}

func (s *VoteService) loadTally(ctx context.Context) (models.VoteTally, error) {
	raw, err := s.store.Get(ctx, votesKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.VoteTally{SchemaVersion: 1, Counts: map[string]int{}}, nil
		}
		return models.VoteTally{}, err
	}

	var tally models.VoteTally
	if err := json.Unmarshal(raw, &tally); err != nil || tally.Counts == nil {
		return models.VoteTally{SchemaVersion: 1, Counts: map[string]int{}}, nil
	}
	return tally, nil
}

func (s *VoteService) saveTally(ctx context.Context, tally models.VoteTally) error {
	tally.SchemaVersion = 1
	raw, err := json.Marshal(tally)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, votesKey, raw)
}

// Vote records one vote on a site for the user. The per-site cooldown
// is claimed before the counter moves, so a rejected vote never
// increments the tally.
func (s *VoteService) Vote(ctx context.Context, userID, siteID string) (models.VoteTally, error) {
	if !s.knownSite(siteID) {
		return models.VoteTally{}, ErrUnknownSite
	}

	ok, remaining, err := s.cooldowns.Acquire(ctx, userID, siteID, s.cfg.Vote.Cooldown)
	if err != nil {
		return models.VoteTally{}, err
	}
	if !ok {
		return models.VoteTally{}, &CooldownError{Remaining: remaining}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tally, err := s.loadTally(ctx)
	if err != nil {
		return models.VoteTally{}, err
	}
	tally.Counts[siteID]++
	if err := s.saveTally(ctx, tally); err != nil {
		return models.VoteTally{}, err
	}
	return tally, nil
}

type SiteStatus struct {
	Site      models.VoteSite
	Votes     int
	Remaining time.Duration
}

// Status lists every site with its aggregate count and, when userID is
// set, the caller's remaining cooldown.
func (s *VoteService) Status(ctx context.Context, userID string) ([]SiteStatus, int, error) {
	tally, err := s.loadTally(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := 0
	for _, count := range tally.Counts {
		total += count
	}

	sites := s.Sites()
	statuses := make([]SiteStatus, 0, len(sites))
	for _, site := range sites {
		status := SiteStatus{Site: site, Votes: tally.Counts[site.ID]}
		if userID != "" {
			remaining, err := s.cooldowns.Remaining(ctx, userID, site.ID)
			if err != nil {
				return nil, 0, err
			}
			status.Remaining = remaining
		}
		statuses = append(statuses, status)
	}
	return statuses, total, nil
}
