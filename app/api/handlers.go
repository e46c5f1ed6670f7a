package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/pulsefeed/app/feed"
)

func NewHandler(configCache *feed.ConfigCache, store StoreInterface,
	refresher RefresherInterface) *Handler {
	return &Handler{
		configCache: configCache,
		store:       store,
		refresher:   refresher,
	}
}

// GetFeed serves the current snapshot for one feed. It only reads process
// memory, never triggers a fetch, and returns an empty list before the first
// successful fetch.
func (h *Handler) GetFeed(feedName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := h.store.Get(feedName)
		if err != nil {
			slog.Error("Snapshot lookup failed", "feed", feedName, "error", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown feed"})
			return
		}

		c.Header("X-Feed-Items", strconv.Itoa(len(snapshot.Items)))
		if !snapshot.UpdatedAt.IsZero() {
			c.Header("X-Last-Updated", snapshot.UpdatedAt.Format(time.RFC3339))
		}

		c.JSON(http.StatusOK, gin.H{feedName: snapshot.Items})
	}
}

// RefreshFeed forces an immediate fetch for one feed, waiting for it to
// complete. The fetch itself runs detached from the request context, so a
// disconnected caller does not abort it.
func (h *Handler) RefreshFeed(feedName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := h.refresher.Run(c.Request.Context(), feedName)
		if err != nil {
			if errors.Is(err, feed.ErrUnknownFeed) {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown feed"})
				return
			}

			slog.Error("Manual refresh failed", "feed", feedName, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{
				"error":  "refresh failed",
				"reason": err.Error(),
			})
			return
		}

		slog.Info("Manual refresh completed", "feed", feedName, "items", count)
		c.JSON(http.StatusOK, gin.H{"status": feedName + " refreshed"})
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"feeds":     h.configCache.GetConfigCount(),
		"enabled":   len(h.configCache.GetEnabledConfigs()),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	feeds := make([]map[string]interface{}, 0, len(h.store.Keys()))

	for _, name := range h.store.Keys() {
		info := map[string]interface{}{
			"name": name,
		}

		if feedConfig, err := h.configCache.GetConfig(name); err == nil {
			info["route"] = "/" + feedConfig.Route
			info["provider"] = feedConfig.Provider
			info["enabled"] = feedConfig.Settings.Enabled
			info["schedule_hours"] = feedConfig.Schedule.Hours
		}

		if snapshot, err := h.store.Get(name); err == nil {
			info["items"] = len(snapshot.Items)
			if !snapshot.UpdatedAt.IsZero() {
				info["last_updated"] = snapshot.UpdatedAt.Format(time.RFC3339)
			}
		}

		feeds = append(feeds, info)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"feeds": feeds,
		"total": len(feeds),
	})
}
