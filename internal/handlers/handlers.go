package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"aurora/web/internal/config"
	"aurora/web/internal/middleware"
	"aurora/web/internal/service"
)

// Deps collects everything the HTTP layer needs. Services are built in
// main so the scheduler and notifier can share them.
type Deps struct {
	Auth         *service.AuthService
	Admin        *service.AdminService
	Users        *service.Users
	Applications *service.ApplicationService
	Appeals      *service.AppealService
	News         *service.NewsService
	Prices       *service.PriceService
	Votes        *service.VoteService
	Status       *service.StatusService
	Profile      *service.ProfileService
	DB           *pgxpool.Pool
	Cache        *redis.Client
}

type HandlerSet struct {
	log zerolog.Logger
	cfg *config.AppConfig
	Deps
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, deps Deps) HandlerSet {
	return HandlerSet{
		log:  log,
		cfg:  cfg,
		Deps: deps,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.Auth(h.cfg, h.Users), h.Me)

		profile := v1.Group("/profile")
		profile.GET("/avatar/:userId", h.GetAvatar)
		profile.Use(middleware.Auth(h.cfg, h.Users))
		profile.GET("/settings", h.GetProfileSettings)
		profile.PUT("/settings", h.SaveProfileSettings)
		profile.PUT("/avatar", h.SaveAvatar)

		v1.GET("/news", h.ListNews)
		v1.GET("/prices", h.ListPrices)
		v1.GET("/discord", h.GetDiscordLink)
		v1.GET("/server/status", h.ServerStatus)

		v1.GET("/vote/sites", middleware.OptionalAuth(h.cfg, h.Users), h.VoteSites)
		v1.POST("/vote/:siteId", middleware.Auth(h.cfg, h.Users), h.Vote)

		v1.POST("/applications", middleware.Auth(h.cfg, h.Users), h.SubmitApplication)
		v1.POST("/appeals", middleware.OptionalAuth(h.cfg, h.Users), h.SubmitAppeal)

		admin := v1.Group("/admin")
		admin.POST("/login", h.AdminLogin)

		protected := v1.Group("/admin")
		protected.Use(middleware.AdminAuth(h.Admin))
		protected.POST("/logout", h.AdminLogout)
		protected.GET("/session", h.AdminSession)
		protected.GET("/settings", h.AdminGetSettings)
		protected.PUT("/settings", h.AdminUpdateSettings)
		protected.GET("/stats", h.AdminStats)
		protected.GET("/applications", h.AdminListApplications)
		protected.PATCH("/applications/:id/status", h.AdminUpdateApplicationStatus)
		protected.GET("/appeals", h.AdminListAppeals)
		protected.PATCH("/appeals/:id/status", h.AdminUpdateAppealStatus)
		protected.GET("/news", h.AdminListNews)
		protected.POST("/news", h.AdminCreateNews)
		protected.PUT("/news/:id", h.AdminUpdateNews)
		protected.DELETE("/news/:id", h.AdminDeleteNews)
		protected.PUT("/prices/:id", h.AdminUpdatePrice)
		protected.PUT("/discord", h.AdminSetDiscordLink)
	}
}
