package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"aurora/web/internal/config"
	"aurora/web/internal/models"
	"aurora/web/internal/security"
	"aurora/web/internal/store"
)

const (
	adminSettingsKey = "aurora:admin_settings"
	discordLinkKey   = "aurora:discord_link"

	defaultDiscordLink = "https://discord.gg/auroramc"
)

// AdminCredentials verifies console logins. StaticAdminCredentials
// holds the single configured pair; swap in a real identity provider
// here without touching the service.
type AdminCredentials interface {
	VerifyAdmin(ctx context.Context, email, password string) error
}

type StaticAdminCredentials struct {
	Email    string
	Password string
}

func (c StaticAdminCredentials) VerifyAdmin(_ context.Context, email, password string) error {
	emailOK := strings.EqualFold(strings.TrimSpace(email), c.Email)
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	if !emailOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// AdminService owns the console session, the submission gates and the
// discord invite link.
type AdminService struct {
	store       store.RecordStore
	credentials AdminCredentials
	cfg         *config.AppConfig
	log         zerolog.Logger
	mu          sync.Mutex
}

func NewAdminService(recordStore store.RecordStore, credentials AdminCredentials, cfg *config.AppConfig, log zerolog.Logger) *AdminService {
	return &AdminService{
		store:       recordStore,
		credentials: credentials,
		cfg:         cfg,
		log:         log,
	}
}

func (s *AdminService) Login(ctx context.Context, email, password string) (string, error) {
	if err := pace(ctx, s.cfg.Security.LoginDelay); err != nil {
		return "", err
	}

	if err := s.credentials.VerifyAdmin(ctx, email, password); err != nil {
		return "", err
	}

	token, err := security.GenerateAdminToken(
		s.cfg.Security.JWTSecret,
		s.cfg.Security.AdminEmail,
		s.cfg.Security.AdminTokenTTL,
	)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("email", s.cfg.Security.AdminEmail).Msg("admin logged in")
	return token, nil
}

// CheckToken validates an admin token the way the console does at page
// load: any decode or validity failure means not authenticated.
func (s *AdminService) CheckToken(tokenStr string) (*security.AdminClaims, error) {
	return security.ParseAdminToken(tokenStr, s.cfg.Security.JWTSecret, s.cfg.Security.AdminEmail)
}

func defaultAdminSettings() models.AdminSettings {
	return models.AdminSettings{
		SchemaVersion:     1,
		StaffApplications: true,
		MediaApplications: true,
		BanAppeals:        true,
	}
}

func (s *AdminService) Settings(ctx context.Context) (models.AdminSettings, error) {
	raw, err := s.store.Get(ctx, adminSettingsKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return defaultAdminSettings(), nil
		}
		return models.AdminSettings{}, err
	}

	var settings models.AdminSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return defaultAdminSettings(), nil
	}
	return settings, nil
}

func (s *AdminService) UpdateSettings(ctx context.Context, settings models.AdminSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.SchemaVersion = 1
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, adminSettingsKey, raw)
}

func (s *AdminService) DiscordLink(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, discordLinkKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return defaultDiscordLink, nil
		}
		return "", err
	}

	var link models.DiscordLink
	if err := json.Unmarshal(raw, &link); err != nil || link.URL == "" {
		return defaultDiscordLink, nil
	}
	return link.URL, nil
}

func (s *AdminService) SetDiscordLink(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("discord link required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(models.DiscordLink{SchemaVersion: 1, URL: url})
	if err != nil {
		return err
	}
	return s.store.Set(ctx, discordLinkKey, raw)
}
