// Package main provides the entry point for the ytfetch service.
// @title ytfetch API
// @version 1.0
// @description Checks YouTube links and downloads videos as mp4 or audio as mp3.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/denisAlshanov/ytfetch/docs" // Import for swagger docs
	"github.com/denisAlshanov/ytfetch/internal/api/handlers"
	"github.com/denisAlshanov/ytfetch/internal/api/router"
	"github.com/denisAlshanov/ytfetch/internal/config"
	"github.com/denisAlshanov/ytfetch/internal/retry"
	"github.com/denisAlshanov/ytfetch/internal/services/downloader"
	"github.com/denisAlshanov/ytfetch/internal/services/youtube"
	"github.com/denisAlshanov/ytfetch/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.WithField("environment", cfg.App.Environment).Info("Starting ytfetch service")

	ytdlpPath := cfg.YouTube.YtdlpPath
	if cfg.YouTube.AutoInstall && ytdlpPath == "" {
		installCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		ytdlpPath, err = youtube.InstallYtdlp(installCtx)
		cancel()
		if err != nil {
			logger.Fatalf("Failed to install yt-dlp: %v", err)
		}
		logger.WithField("path", ytdlpPath).Info("yt-dlp installed")
	}

	if cfg.Proxy.URL != "" {
		logger.Info("Outbound requests will use the configured proxy")
	}

	// oEmbed is the lightweight fallback; innertube gets the full metadata timeout
	httpClient, err := youtube.NewHTTPClient(cfg.Proxy.URL, cfg.Metadata.OEmbedTimeout)
	if err != nil {
		logger.Fatalf("Failed to build HTTP client: %v", err)
	}
	playerClient, err := youtube.NewHTTPClient(cfg.Proxy.URL, cfg.Metadata.SocketTimeout)
	if err != nil {
		logger.Fatalf("Failed to build HTTP client: %v", err)
	}

	ytdlpClient := youtube.NewClient(youtube.ClientConfig{
		ExecutablePath:  ytdlpPath,
		ProxyURL:        cfg.Proxy.URL,
		UserAgent:       cfg.YouTube.UserAgent,
		MetadataTimeout: cfg.Metadata.SocketTimeout,
		DownloadTimeout: cfg.Download.SocketTimeout,
	})

	providers, err := youtube.NewProviders(cfg.Metadata.Providers, youtube.ProviderDeps{
		Ytdlp:            ytdlpClient,
		HTTPClient:       httpClient,
		PlayerHTTPClient: playerClient,
		OEmbedEndpoint:   cfg.Metadata.OEmbedEndpoint,
		UserAgent:        cfg.YouTube.UserAgent,
	})
	if err != nil {
		logger.Fatalf("Failed to configure metadata providers: %v", err)
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = cfg.Metadata.MaxRetries
	retryCfg.InitialBackoff = cfg.Metadata.RetryBackoff
	fetcher := youtube.NewMetadataFetcher(providers, retryCfg)

	downloaderService := downloader.NewDownloader(fetcher, ytdlpClient, &cfg.Download)

	// Initialize handlers
	videoHandler := handlers.NewVideoHandler(fetcher, downloaderService, cfg.IsDevelopment())
	healthHandler := handlers.NewHealthHandler(ytdlpPath)

	r := router.NewRouter(cfg, videoHandler, healthHandler)

	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server shutdown complete")
}
