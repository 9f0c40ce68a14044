package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/web/internal/service"
)

func (h HandlerSet) ListNews(c *gin.Context) {
	items, err := h.News.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h HandlerSet) ListPrices(c *gin.Context) {
	items, err := h.Prices.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h HandlerSet) GetDiscordLink(c *gin.Context) {
	link, err := h.Admin.DiscordLink(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

func (h HandlerSet) ServerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Status.Snapshot())
}

func (h HandlerSet) VoteSites(c *gin.Context) {
	userID := ""
	if user, ok := currentUser(c); ok {
		userID = user.ID
	}

	statuses, total, err := h.Votes.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, gin.H{
			"site":             status.Site,
			"votes":            status.Votes,
			"remainingSeconds": int(status.Remaining.Seconds()),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sites": items, "totalVotes": total})
}

func (h HandlerSet) Vote(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	siteID := c.Param("siteId")
	tally, err := h.Votes.Vote(c.Request.Context(), user.ID, siteID)
	if err != nil {
		var cooldown *service.CooldownError
		switch {
		case errors.Is(err, service.ErrUnknownSite):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown vote site"})
		case errors.As(err, &cooldown):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":            "vote cooldown active",
				"remainingSeconds": int(cooldown.Remaining.Seconds()),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": tally.Counts})
}
