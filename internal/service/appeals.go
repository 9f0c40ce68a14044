package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"aurora/web/internal/cache"
	"aurora/web/internal/ids"
	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

const appealsKey = "aurora:ban_appeals"

type AppealService struct {
	store  store.RecordStore
	admin  *AdminService
	events *cache.Events
	log    zerolog.Logger
	mu     sync.Mutex
	seeded bool
}

func NewAppealService(recordStore store.RecordStore, admin *AdminService, events *cache.Events, log zerolog.Logger) *AppealService {
	return &AppealService{
		store:  recordStore,
		admin:  admin,
		events: events,
		log:    log,
	}
}

func seedAppeals() []models.BanAppeal {
	return []models.BanAppeal{
		{
			ID:            "seed-appeal-1",
			Username:      "Griefer123",
			DiscordTag:    "Griefer123#1234",
			BanReason:     "Griefing spawn area",
			AppealMessage: "I'm sorry for what I did. I was having a bad day and took it out on the server. I promise it won't happen again and I'll help rebuild what I destroyed.",
			Status:        models.StatusPending,
			Timestamp:     "2024-01-15T14:20:00Z",
		},
		{
			ID:            "seed-appeal-2",
			Username:      "ToxicPlayer",
			DiscordTag:    "ToxicPlayer#5678",
			BanReason:     "Harassment and toxic behavior",
			AppealMessage: "I realize my behavior was unacceptable. I've learned from my mistakes and want to be a positive member of the community.",
			Status:        models.StatusPending,
			Timestamp:     "2024-01-14T09:15:00Z",
		},
	}
}

func (s *AppealService) ensureSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return nil
	}
	if _, err := s.store.Get(ctx, appealsKey); err == nil {
		s.seeded = true
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err := s.save(ctx, models.BanAppealCollection{Items: seedAppeals()}); err != nil {
		return err
	}
	s.seeded = true
	return nil
}

func (s *AppealService) load(ctx context.Context) (models.BanAppealCollection, error) {
	raw, err := s.store.Get(ctx, appealsKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.BanAppealCollection{SchemaVersion: 1}, nil
		}
		return models.BanAppealCollection{}, err
	}

	var col models.BanAppealCollection
	if err := json.Unmarshal(raw, &col); err != nil {
		return models.BanAppealCollection{SchemaVersion: 1}, nil
	}
	return col, nil
}

func (s *AppealService) save(ctx context.Context, col models.BanAppealCollection) error {
	col.SchemaVersion = 1
	raw, err := json.Marshal(col)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, appealsKey, raw)
}

type AppealInput struct {
	Username      string
	DiscordTag    string
	BanReason     string
	AppealMessage string
}

// Submit files a ban appeal. Banned players cannot log in, so the form
// takes a raw username instead of requiring a session.
func (s *AppealService) Submit(ctx context.Context, input AppealInput) (models.BanAppeal, error) {
	if input.Username == "" || input.DiscordTag == "" || input.AppealMessage == "" {
		return models.BanAppeal{}, errors.New("username, discord tag and appeal message are required")
	}

	settings, err := s.admin.Settings(ctx)
	if err != nil {
		return models.BanAppeal{}, err
	}
	if !settings.BanAppeals {
		return models.BanAppeal{}, ErrSubmissionsClosed
	}

	if err := s.ensureSeeded(ctx); err != nil {
		return models.BanAppeal{}, err
	}

	appeal := models.BanAppeal{
		ID:            ids.New(),
		Username:      input.Username,
		DiscordTag:    input.DiscordTag,
		BanReason:     input.BanReason,
		AppealMessage: input.AppealMessage,
		Status:        models.StatusPending,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return models.BanAppeal{}, err
	}
	col.Items = append(col.Items, appeal)
	if err := s.save(ctx, col); err != nil {
		return models.BanAppeal{}, err
	}

	if err := s.events.PublishSubmission(ctx, "ban_appeal", appeal.ID, appeal.Username); err != nil {
		s.log.Warn().Err(err).Msg("publish appeal event failed")
	}

	s.log.Info().Str("id", appeal.ID).Str("username", appeal.Username).Msg("ban appeal submitted")
	return appeal, nil
}

func (s *AppealService) List(ctx context.Context) ([]models.BanAppeal, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	col, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return col.Items, nil
}

func (s *AppealService) CountPending(ctx context.Context) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		if item.Status == models.StatusPending {
			count++
		}
	}
	return count, nil
}

func (s *AppealService) UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus) (models.BanAppeal, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return models.BanAppeal{}, ErrInvalidStatus
	}
	if err := s.ensureSeeded(ctx); err != nil {
		return models.BanAppeal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return models.BanAppeal{}, err
	}
	for i := range col.Items {
		if col.Items[i].ID == id {
			col.Items[i].Status = status
			if err := s.save(ctx, col); err != nil {
				return models.BanAppeal{}, err
			}
			return col.Items[i], nil
		}
	}
	return models.BanAppeal{}, ErrSubmissionNotFound
}
