package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campushub/pulsefeed/app/api"
	"github.com/campushub/pulsefeed/app/cache"
	"github.com/campushub/pulsefeed/app/cfg"
	"github.com/campushub/pulsefeed/app/feed"
	"github.com/campushub/pulsefeed/app/fetch"
	"github.com/campushub/pulsefeed/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Println("Starting PulseFeed server...")

	// Load feed definitions
	log.Printf("Loading feed definitions from %s...", appCfg.FeedsDir)
	configCache := feed.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(); err != nil {
		log.Fatal("Failed to load feed definitions:", err)
	}
	log.Printf("Loaded %d feed definitions", configCache.GetConfigCount())
	if configCache.GetConfigCount() == 0 {
		log.Printf("Warning: no feed definitions found, only service endpoints will be served")
	}

	// Initialize core components
	store := cache.New(configCache.Names())
	fetcher := fetch.NewClient(&http.Client{}, appCfg.UserAgent, appCfg.NewsAPIKey, appCfg.YouTubeAPIKey)
	refresher := feed.NewRefresher(configCache, store, fetcher)

	// Initialize and start scheduler
	log.Printf("Starting background scheduler with %d workers...", appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(configCache, refresher)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	handler := api.NewHandler(configCache, store, refresher)
	server := api.NewServer(handler, configCache)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		for name, feedConfig := range configCache.GetConfigs() {
			log.Printf("  Feed:          http://localhost:%s/%s", appCfg.Port, feedConfig.Route)
			log.Printf("  Refresh:       http://localhost:%s/refresh-%s", appCfg.Port, name)
		}
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Statistics:    http://localhost:%s/stats", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("PulseFeed server started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("PulseFeed server shutdown complete")
}
