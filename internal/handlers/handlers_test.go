package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"aurora/web/internal/config"
	"aurora/web/internal/models"
	"aurora/web/internal/security"
	"aurora/web/internal/service"
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

func newTestRouter(t *testing.T) (*gin.Engine, HandlerSet, *config.AppConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	logger := zerolog.Nop()
	recordStore := store.NewMemoryStore()

	users := service.NewUsers(recordStore)
	admin := service.NewAdminService(recordStore, service.StaticAdminCredentials{
		Email:    cfg.Security.AdminEmail,
		Password: cfg.Security.AdminPassword,
	}, cfg, logger)

	deps := Deps{
		Auth:         service.NewAuthService(users, service.NewStoreVerifier(users), cfg, logger),
		Admin:        admin,
		Users:        users,
		Applications: service.NewApplicationService(recordStore, admin, nil, logger),
		Appeals:      service.NewAppealService(recordStore, admin, nil, logger),
		News:         service.NewNewsService(recordStore),
		Prices:       service.NewPriceService(recordStore),
		Status:       service.NewStatusService(cfg, logger),
		Profile:      service.NewProfileService(recordStore, users, nil),
	}

	handlerSet := NewHandlerSet(logger, cfg, deps)
	engine := gin.New()
	handlerSet.Register(engine.Group("/api"))
	return engine, handlerSet, cfg
}

func doJSON(engine *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutesRequireValidToken(t *testing.T) {
	engine, _, cfg := newTestRouter(t)

	rec := doJSON(engine, http.MethodGet, "/api/v1/admin/settings", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := security.GenerateAdminToken(cfg.Security.JWTSecret, cfg.Security.AdminEmail, -time.Hour)
	require.NoError(t, err)
	rec = doJSON(engine, http.MethodGet, "/api/v1/admin/settings", expired, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	wrongEmail, err := security.GenerateAdminToken(cfg.Security.JWTSecret, "intruder@example.com", time.Hour)
	require.NoError(t, err)
	rec = doJSON(engine, http.MethodGet, "/api/v1/admin/settings", wrongEmail, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginAndSettingsFlow(t *testing.T) {
	engine, _, cfg := newTestRouter(t)

	rec := doJSON(engine, http.MethodPost, "/api/v1/admin/login", "",
		`{"email":"`+cfg.Security.AdminEmail+`","password":"`+cfg.Security.AdminPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)

	rec = doJSON(engine, http.MethodGet, "/api/v1/admin/session", loginResp.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(engine, http.MethodPut, "/api/v1/admin/settings", loginResp.Token,
		`{"staffApplications":true,"mediaApplications":true,"banAppeals":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// The appeal form is now closed.
	rec = doJSON(engine, http.MethodPost, "/api/v1/appeals", "",
		`{"username":"Banned_Bob","discordTag":"bob#4242","appealMessage":"please"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmitAppealUnauthenticated(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	rec := doJSON(engine, http.MethodPost, "/api/v1/appeals", "",
		`{"username":"Banned_Bob","discordTag":"bob#4242","appealMessage":"please unban me"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Appeal models.BanAppeal `json:"appeal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.StatusPending, resp.Appeal.Status)
	require.Equal(t, "Banned_Bob", resp.Appeal.Username)
}

func TestApplicationRequiresSession(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	body := `{"type":"staff","age":"19","discordId":"x#1","experience":"some","reason":"because"}`
	rec := doJSON(engine, http.MethodPost, "/api/v1/applications", "", body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Register, then apply with the issued token.
	rec = doJSON(engine, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"Steve_Builder","email":"steve@example.com","password":"hunter2hunter2","confirmPassword":"hunter2hunter2","acceptedTerms":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var authResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authResp))

	rec = doJSON(engine, http.MethodPost, "/api/v1/applications", authResp.Token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var appResp struct {
		Application models.Application `json:"application"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appResp))
	require.Equal(t, "Steve_Builder", appResp.Application.Username)
	require.Equal(t, models.StatusPending, appResp.Application.Status)
}

func TestPublicNewsOnlyPublished(t *testing.T) {
	engine, handlerSet, _ := newTestRouter(t)

	unpublished := false
	_, err := handlerSet.News.Update(context.Background(), "seed-news-1", service.NewsInput{}, &unpublished)
	require.NoError(t, err)

	rec := doJSON(engine, http.MethodGet, "/api/v1/news", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []models.NewsItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	require.Equal(t, "seed-news-2", resp.Items[0].ID)
}
