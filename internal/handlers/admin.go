package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/web/internal/middleware"
	"aurora/web/internal/models"
	"aurora/web/internal/security"
	"aurora/web/internal/service"
)

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Admin.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h HandlerSet) AdminLogout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// AdminSession answers the console's page-load validity check; getting
// this far through the middleware means the token is good.
func (h HandlerSet) AdminSession(c *gin.Context) {
	claimsVal, _ := c.Get(middleware.ContextAdmin)
	claims, ok := claimsVal.(security.AdminClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":     claims.Email,
		"role":      claims.Role,
		"expiresAt": claims.ExpiresAt.Time,
	})
}

func (h HandlerSet) AdminGetSettings(c *gin.Context) {
	settings, err := h.Admin.Settings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type adminSettingsRequest struct {
	StaffApplications bool `json:"staffApplications"`
	MediaApplications bool `json:"mediaApplications"`
	BanAppeals        bool `json:"banAppeals"`
}

func (h HandlerSet) AdminUpdateSettings(c *gin.Context) {
	var req adminSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.AdminSettings{
		StaffApplications: req.StaffApplications,
		MediaApplications: req.MediaApplications,
		BanAppeals:        req.BanAppeals,
	}
	if err := h.Admin.UpdateSettings(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h HandlerSet) AdminStats(c *gin.Context) {
	pendingApps, err := h.Applications.CountPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	pendingAppeals, err := h.Appeals.CountPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pendingApplications": pendingApps,
		"pendingAppeals":      pendingAppeals,
	})
}

func (h HandlerSet) AdminListApplications(c *gin.Context) {
	appType := models.ApplicationType(c.Query("type"))
	if appType != "" && appType != models.ApplicationStaff && appType != models.ApplicationMedia {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be staff or media"})
		return
	}

	items, err := h.Applications.List(c.Request.Context(), appType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type statusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

func (h HandlerSet) AdminUpdateApplicationStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.Applications.UpdateStatus(c.Request.Context(), c.Param("id"), models.SubmissionStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": application})
}

func (h HandlerSet) AdminListAppeals(c *gin.Context) {
	items, err := h.Appeals.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h HandlerSet) AdminUpdateAppealStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appeal, err := h.Appeals.UpdateStatus(c.Request.Context(), c.Param("id"), models.SubmissionStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appeal not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appeal": appeal})
}

func (h HandlerSet) AdminListNews(c *gin.Context) {
	items, err := h.News.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type newsRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Date      string `json:"date"`
	Published *bool  `json:"published"`
}

func (h HandlerSet) AdminCreateNews(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.News.Create(c.Request.Context(), service.NewsInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h HandlerSet) AdminUpdateNews(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.News.Update(c.Request.Context(), c.Param("id"), service.NewsInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Date:     req.Date,
	}, req.Published)
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news item not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h HandlerSet) AdminDeleteNews(c *gin.Context) {
	if err := h.News.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type priceRequest struct {
	Price string `json:"price" binding:"required"`
}

func (h HandlerSet) AdminUpdatePrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Prices.UpdatePrice(c.Request.Context(), c.Param("id"), req.Price)
	if err != nil {
		if errors.Is(err, service.ErrPriceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "price item not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

type discordRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func (h HandlerSet) AdminSetDiscordLink(c *gin.Context) {
	var req discordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Admin.SetDiscordLink(c.Request.Context(), req.URL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": req.URL})
}
