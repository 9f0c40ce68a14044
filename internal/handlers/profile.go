package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/web/internal/models"
	"aurora/web/internal/service"
)

const maxAvatarBytes = 2 << 20 // 2 MiB

func (h HandlerSet) GetProfileSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	settings, err := h.Profile.Settings(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type settingsRequest struct {
	DisplayName   string `json:"displayName"`
	Bio           string `json:"bio"`
	Theme         string `json:"theme" binding:"required"`
	Notifications struct {
		Email   bool `json:"email"`
		Discord bool `json:"discord"`
	} `json:"notifications"`
}

func (h HandlerSet) SaveProfileSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.Profile.SaveSettings(c.Request.Context(), user.ID, models.UserSettings{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Theme:       req.Theme,
		Notifications: models.NotificationPrefs{
			Email:   req.Notifications.Email,
			Discord: req.Notifications.Discord,
		},
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h HandlerSet) SaveAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	contentType := c.ContentType()
	if contentType != "image/png" && contentType != "image/jpeg" && contentType != "image/webp" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)
	defer body.Close()

	err := h.Profile.SaveAvatar(c.Request.Context(), user.ID, contentType, body, c.Request.ContentLength)
	if err != nil {
		if errors.Is(err, service.ErrAvatarStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "avatar storage unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) GetAvatar(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	reader, contentType, err := h.Profile.Avatar(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "avatar not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
