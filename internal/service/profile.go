package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

var ErrAvatarStorageUnavailable = errors.New("avatar storage unavailable")

var validThemes = map[string]struct{}{
	"default": {},
	"dark":    {},
	"neon":    {},
	"sunset":  {},
}

// AvatarStore is the object-storage surface the profile service needs.
type AvatarStore interface {
	PutAvatar(ctx context.Context, userID string, contentType string, body io.Reader, size int64) error
	GetAvatar(ctx context.Context, userID string) (io.ReadCloser, string, error)
}

type ProfileService struct {
	store   store.RecordStore
	users   *Users
	avatars AvatarStore
	mu      sync.Mutex
}

func NewProfileService(recordStore store.RecordStore, users *Users, avatars AvatarStore) *ProfileService {
	return &ProfileService{
		store:   recordStore,
		users:   users,
		avatars: avatars,
	}
}

func settingsKey(userID string) string {
	return "aurora:user_settings:" + userID
}

func defaultSettings(user models.UserProfile) models.UserSettings {
	return models.UserSettings{
		SchemaVersion: 1,
		DisplayName:   user.Username,
		Theme:         "default",
		Notifications: models.NotificationPrefs{Email: true, Discord: true},
	}
}

func (s *ProfileService) Settings(ctx context.Context, userID string) (models.UserSettings, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.UserSettings{}, err
	}

	raw, err := s.store.Get(ctx, settingsKey(userID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return defaultSettings(user), nil
		}
		return models.UserSettings{}, err
	}

	var settings models.UserSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return defaultSettings(user), nil
	}
	return settings, nil
}

// SaveSettings persists appearance preferences and mirrors the display
// name onto the profile record.
func (s *ProfileService) SaveSettings(ctx context.Context, userID string, settings models.UserSettings) (models.UserSettings, error) {
	if _, ok := validThemes[settings.Theme]; !ok {
		return models.UserSettings{}, fmt.Errorf("unknown theme %q", settings.Theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings.SchemaVersion = 1
	raw, err := json.Marshal(settings)
	if err != nil {
		return models.UserSettings{}, err
	}
	if err := s.store.Set(ctx, settingsKey(userID), raw); err != nil {
		return models.UserSettings{}, err
	}

	if settings.DisplayName != "" {
		if _, err := s.users.SetDisplayName(ctx, userID, settings.DisplayName); err != nil {
			return models.UserSettings{}, err
		}
	}
	return settings, nil
}

func (s *ProfileService) SaveAvatar(ctx context.Context, userID string, contentType string, body io.Reader, size int64) error {
	if s.avatars == nil {
		return ErrAvatarStorageUnavailable
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.avatars.PutAvatar(ctx, userID, contentType, body, size)
}

func (s *ProfileService) Avatar(ctx context.Context, userID string) (io.ReadCloser, string, error) {
	if s.avatars == nil {
		return nil, "", ErrAvatarStorageUnavailable
	}
	return s.avatars.GetAvatar(ctx, userID)
}
