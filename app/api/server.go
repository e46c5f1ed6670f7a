package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/pulsefeed/app/cfg"
	"github.com/campushub/pulsefeed/app/feed"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, configCache *feed.ConfigCache) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware; the frontend origin is configurable, "*" by default
	allowedOrigin := cfg.Get().AllowedOrigin
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, configCache)

	return r
}

// setupRoutes registers one read route and one refresh route per configured
// feed, plus service endpoints. Requests for unconfigured feeds fall through
// to gin's 404.
func setupRoutes(r *gin.Engine, handler *Handler, configCache *feed.ConfigCache) {
	apiAccessKey := cfg.Get().APIAccessKey

	refreshGroup := r.Group("/")
	if apiAccessKey != "" {
		refreshGroup.Use(authMiddleware(apiAccessKey))
		log.Printf("Refresh endpoints enabled with authentication")
	} else {
		log.Printf("Refresh endpoints enabled without authentication (API_ACCESS_KEY not set)")
	}

	routes := map[string]string{}
	for name, feedConfig := range configCache.GetConfigs() {
		r.GET("/"+feedConfig.Route, handler.GetFeed(name))
		refreshGroup.GET("/refresh-"+name, handler.RefreshFeed(name))
		routes[name] = "/" + feedConfig.Route
	}

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"health": "/health",
			"stats":  "/stats",
		}
		for name, route := range routes {
			endpoints[name] = route
			endpoints["refresh-"+name] = "/refresh-" + name
		}

		c.JSON(200, gin.H{
			"service":     "PulseFeed",
			"version":     cfg.Get().Version,
			"description": "Campus content feed cache with scheduled and manual refreshes",
			"endpoints":   endpoints,
			"refresh_auth": map[string]interface{}{
				"required": apiAccessKey != "",
				"header":   "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for refresh endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
