package service

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"

	"aurora/web/internal/config"
)

type PlayerInfo struct {
	Name string `json:"name"`
	Ping int    `json:"ping"`
}

type ServerSnapshot struct {
	Online      bool         `json:"online"`
	Host        string       `json:"host"`
	Version     string       `json:"version"`
	MaxPlayers  int          `json:"maxPlayers"`
	PlayerCount int          `json:"playerCount"`
	Players     []PlayerInfo `json:"players"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// StatusService serves the live-player widget. There is no Minecraft
// query protocol integration; the snapshot is fabricated around a
// stable fake roster the way the old site mocked it. Refresh is safe
// to call from the scheduler and the handler at once: only one refresh
// runs at a time, extra callers get the current snapshot.
type StatusService struct {
	cfg    *config.AppConfig
	log    zerolog.Logger
	roster []string

	mu         sync.RWMutex
	snapshot   ServerSnapshot
	refreshing atomic.Bool
}

func NewStatusService(cfg *config.AppConfig, log zerolog.Logger) *StatusService {
	faker := gofakeit.New(0)

	roster := make([]string, 24)
	for i := range roster {
		roster[i] = faker.Gamertag()
	}

	s := &StatusService{
		cfg:    cfg,
		log:    log,
		roster: roster,
	}
	s.Refresh()
	return s
}

// Refresh rebuilds the snapshot. Overlapping calls collapse into one.
func (s *StatusService) Refresh() {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer s.refreshing.Store(false)

	shuffled := make([]string, len(s.roster))
	copy(shuffled, s.roster)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	visible := rand.Intn(8) + 4
	if visible > len(shuffled) {
		visible = len(shuffled)
	}

	players := make([]PlayerInfo, 0, visible)
	for _, name := range shuffled[:visible] {
		players = append(players, PlayerInfo{
			Name: name,
			Ping: rand.Intn(100) + 10,
		})
	}

	snapshot := ServerSnapshot{
		Online:      true,
		Host:        s.cfg.Status.ServerAddress,
		Version:     "1.20.4",
		MaxPlayers:  s.cfg.Status.MaxPlayers,
		PlayerCount: 120 + rand.Intn(40),
		Players:     players,
		UpdatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.log.Debug().Int("players", snapshot.PlayerCount).Msg("server status refreshed")
}

func (s *StatusService) Snapshot() ServerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
