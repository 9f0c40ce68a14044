package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/web/internal/models"
	"aurora/web/internal/service"
)

type applicationRequest struct {
	Type         string `json:"type" binding:"required,oneof=staff media"`
	Age          string `json:"age" binding:"required"`
	DiscordID    string `json:"discordId" binding:"required"`
	ChannelLink  string `json:"channelLink"`
	Experience   string `json:"experience" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
	Timezone     string `json:"timezone"`
	Availability string `json:"availability"`
}

func (h HandlerSet) SubmitApplication(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.Applications.Submit(c.Request.Context(), user, service.ApplicationInput{
		Type:         models.ApplicationType(req.Type),
		Age:          req.Age,
		DiscordID:    req.DiscordID,
		ChannelLink:  req.ChannelLink,
		Experience:   req.Experience,
		Reason:       req.Reason,
		Timezone:     req.Timezone,
		Availability: req.Availability,
	})
	if err != nil {
		if errors.Is(err, service.ErrSubmissionsClosed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "applications are currently closed"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application": application})
}

type appealRequest struct {
	Username      string `json:"username"`
	DiscordTag    string `json:"discordTag" binding:"required"`
	BanReason     string `json:"banReason"`
	AppealMessage string `json:"appealMessage" binding:"required"`
}

func (h HandlerSet) SubmitAppeal(c *gin.Context) {
	var req appealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A logged-in user appeals under their own name.
	if user, ok := currentUser(c); ok {
		req.Username = user.Username
	}

	appeal, err := h.Appeals.Submit(c.Request.Context(), service.AppealInput{
		Username:      req.Username,
		DiscordTag:    req.DiscordTag,
		BanReason:     req.BanReason,
		AppealMessage: req.AppealMessage,
	})
	if err != nil {
		if errors.Is(err, service.ErrSubmissionsClosed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "ban appeals are currently closed"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appeal": appeal})
}
