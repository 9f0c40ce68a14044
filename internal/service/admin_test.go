package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aurora/web/internal/models"
	"aurora/web/internal/security"
	"aurora/web/internal/store"
)

func TestAdminLogin(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	admin := testAdmin(store.NewMemoryStore(), cfg)
	ctx := context.Background()

	token, err := admin.Login(ctx, cfg.Security.AdminEmail, cfg.Security.AdminPassword)
	require.NoError(t, err)

	claims, err := admin.CheckToken(token)
	require.NoError(t, err)
	require.Equal(t, cfg.Security.AdminEmail, claims.Email)
	require.Equal(t, "admin", claims.Role)

	_, err = admin.Login(ctx, cfg.Security.AdminEmail, "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = admin.Login(ctx, "someone@example.com", cfg.Security.AdminPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminCheckTokenExpired(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	admin := testAdmin(store.NewMemoryStore(), cfg)

	// Correct email, expiry in the past: still invalid.
	expired, err := security.GenerateAdminToken(cfg.Security.JWTSecret, cfg.Security.AdminEmail, -time.Hour)
	require.NoError(t, err)

	_, err = admin.CheckToken(expired)
	require.Error(t, err)
}

func TestAdminSettingsDefaultsAndUpdate(t *testing.T) {
	t.Parallel()

	recordStore := store.NewMemoryStore()
	admin := testAdmin(recordStore, testConfig())
	ctx := context.Background()

	settings, err := admin.Settings(ctx)
	require.NoError(t, err)
	require.True(t, settings.StaffApplications)
	require.True(t, settings.MediaApplications)
	require.True(t, settings.BanAppeals)

	settings.MediaApplications = false
	require.NoError(t, admin.UpdateSettings(ctx, settings))

	settings, err = admin.Settings(ctx)
	require.NoError(t, err)
	require.True(t, settings.StaffApplications)
	require.False(t, settings.MediaApplications)
}

func TestAdminSettingsCorruptBlob(t *testing.T) {
	t.Parallel()

	recordStore := store.NewMemoryStore()
	admin := testAdmin(recordStore, testConfig())
	ctx := context.Background()

	require.NoError(t, recordStore.Set(ctx, "aurora:admin_settings", []byte("{bad json")))

	settings, err := admin.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, models.AdminSettings{
		SchemaVersion:     1,
		StaffApplications: true,
		MediaApplications: true,
		BanAppeals:        true,
	}, settings)
}

func TestDiscordLink(t *testing.T) {
	t.Parallel()

	admin := testAdmin(store.NewMemoryStore(), testConfig())
	ctx := context.Background()

	link, err := admin.DiscordLink(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, link)

	require.NoError(t, admin.SetDiscordLink(ctx, "https://discord.gg/new-invite"))

	link, err = admin.DiscordLink(ctx)
	require.NoError(t, err)
	require.Equal(t, "https://discord.gg/new-invite", link)

	require.Error(t, admin.SetDiscordLink(ctx, "  "))
}
