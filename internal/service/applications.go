package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"aurora/web/internal/cache"
	"aurora/web/internal/ids"
	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

const applicationsKey = "aurora:applications"

var (
	ErrSubmissionsClosed  = errors.New("submissions are currently closed")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidStatus      = errors.New("status must be approved or rejected")
)

type ApplicationService struct {
	store  store.RecordStore
	admin  *AdminService
	events *cache.Events
	log    zerolog.Logger
	mu     sync.Mutex
	seeded bool
}

func NewApplicationService(recordStore store.RecordStore, admin *AdminService, events *cache.Events, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		store:  recordStore,
		admin:  admin,
		events: events,
		log:    log,
	}
}

func seedApplications() []models.Application {
	return []models.Application{
		{
			ID:         "seed-app-1",
			Type:       models.ApplicationStaff,
			Username:   "Steve_Builder",
			Email:      "steve@example.com",
			Age:        "18",
			Experience: "2 years moderating Discord servers",
			Reason:     "I want to help make the server a better place for everyone",
			Status:     models.StatusPending,
			Timestamp:  "2024-01-15T10:30:00Z",
		},
		{
			ID:         "seed-app-2",
			Type:       models.ApplicationMedia,
			Username:   "Alex_Creator",
			Email:      "alex@example.com",
			Age:        "20",
			Experience: "YouTube channel with 10k subscribers",
			Reason:     "I create Minecraft content and want to showcase Aurora MC",
			Status:     models.StatusPending,
			Timestamp:  "2024-01-14T15:45:00Z",
		},
	}
}

// ensureSeeded writes the default applications on first access. The
// flag is only set once the store answered, so a transient store error
// leaves seeding armed for the next call.
func (s *ApplicationService) ensureSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return nil
	}
	if _, err := s.store.Get(ctx, applicationsKey); err == nil {
		s.seeded = true
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err := s.save(ctx, models.ApplicationCollection{Items: seedApplications()}); err != nil {
		return err
	}
	s.seeded = true
	return nil
}

func (s *ApplicationService) load(ctx context.Context) (models.ApplicationCollection, error) {
	raw, err := s.store.Get(ctx, applicationsKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ApplicationCollection{SchemaVersion: 1}, nil
		}
		return models.ApplicationCollection{}, err
	}

	var col models.ApplicationCollection
	if err := json.Unmarshal(raw, &col); err != nil {
		return models.ApplicationCollection{SchemaVersion: 1}, nil
	}
	return col, nil
}

func (s *ApplicationService) save(ctx context.Context, col models.ApplicationCollection) error {
	col.SchemaVersion = 1
	raw, err := json.Marshal(col)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, applicationsKey, raw)
}

type ApplicationInput struct {
	Type         models.ApplicationType
	Age          string
	DiscordID    string
	ChannelLink  string
	Experience   string
	Reason       string
	Timezone     string
	Availability string
}

// Submit files an application for the given user. The submission gate
// for the application type must be open.
func (s *ApplicationService) Submit(ctx context.Context, user models.UserProfile, input ApplicationInput) (models.Application, error) {
	if input.Type != models.ApplicationStaff && input.Type != models.ApplicationMedia {
		return models.Application{}, fmt.Errorf("unknown application type %q", input.Type)
	}
	if input.Age == "" || input.DiscordID == "" || input.Experience == "" || input.Reason == "" {
		return models.Application{}, errors.New("age, discord id, experience and reason are required")
	}

	settings, err := s.admin.Settings(ctx)
	if err != nil {
		return models.Application{}, err
	}
	open := settings.StaffApplications
	if input.Type == models.ApplicationMedia {
		open = settings.MediaApplications
	}
	if !open {
		return models.Application{}, ErrSubmissionsClosed
	}

	if err := s.ensureSeeded(ctx); err != nil {
		return models.Application{}, err
	}

	application := models.Application{
		ID:           ids.New(),
		Type:         input.Type,
		Username:     user.Username,
		Email:        user.Email,
		Age:          input.Age,
		DiscordID:    input.DiscordID,
		ChannelLink:  input.ChannelLink,
		Experience:   input.Experience,
		Reason:       input.Reason,
		Timezone:     input.Timezone,
		Availability: input.Availability,
		Status:       models.StatusPending,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return models.Application{}, err
	}
	col.Items = append(col.Items, application)
	if err := s.save(ctx, col); err != nil {
		return models.Application{}, err
	}

	if err := s.events.PublishSubmission(ctx, "application", application.ID, application.Username); err != nil {
		s.log.Warn().Err(err).Msg("publish application event failed")
	}

	s.log.Info().
		Str("id", application.ID).
		Str("type", string(application.Type)).
		Str("username", application.Username).
		Msg("application submitted")

	return application, nil
}

// List returns applications in insertion order, optionally filtered by
// type.
func (s *ApplicationService) List(ctx context.Context, appType models.ApplicationType) ([]models.Application, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	col, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if appType == "" {
		return col.Items, nil
	}

	filtered := make([]models.Application, 0, len(col.Items))
	for _, item := range col.Items {
		if item.Type == appType {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *ApplicationService) CountPending(ctx context.Context) (int, error) {
	items, err := s.List(ctx, "")
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

// UpdateStatus approves or rejects an application. A missing id is an
// error rather than the silent no-op the old site had.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus) (models.Application, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return models.Application{}, ErrInvalidStatus
	}
	if err := s.ensureSeeded(ctx); err != nil {
		return models.Application{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return models.Application{}, err
	}
	for i := range col.Items {
		if col.Items[i].ID == id {
			col.Items[i].Status = status
			if err := s.save(ctx, col); err != nil {
				return models.Application{}, err
			}
			return col.Items[i], nil
		}
	}
	return models.Application{}, ErrSubmissionNotFound
}
