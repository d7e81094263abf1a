package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cryptolens/cryptolens/internal/config"
	"github.com/cryptolens/cryptolens/internal/handlers"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("CryptoLens Server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  JWT_SECRET            Session token signing secret (required)\n")
		fmt.Printf("  PORT                  Server port (default: 8080)\n")
		fmt.Printf("  HOST                  Server host (default: 0.0.0.0)\n")
		fmt.Printf("  DATABASE_PATH         SQLite database file (default: cryptolens.db)\n")
		fmt.Printf("  SOURCES_FILE          News source configuration (default: sources.yaml)\n")
		fmt.Printf("  ARCHIVE_BUCKET        GCS bucket for fetch archives (optional)\n")
		fmt.Printf("  CRYPTOPANIC_API_KEY   CryptoPanic API key\n")
		fmt.Printf("  NEWSAPI_API_KEY       NewsAPI.org API key\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("CryptoLens Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		log.Fatalf("Failed to load sources: %v", err)
	}

	// Create server
	server, err := handlers.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer server.Close()

	// Setup routes
	router := server.SetupRoutes()

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Schedule each news source individually with its own cron expression
	c := cron.New()

	for _, src := range sources {
		if !src.Enabled {
			log.Printf("Skipping disabled source: %s", src.Name)
			continue
		}

		name := src.Name // capture for closure
		_, err := c.AddFunc(src.Schedule, func() {
			log.Printf("🕐 Scheduled fetch starting for %s", name)
			result, err := server.Ingest().FetchSource(ctx, name)
			if err != nil {
				log.Printf("❌ Scheduled fetch failed for %s: %v", name, err)
			} else if result.Error != "" {
				log.Printf("❌ Scheduled fetch failed for %s: %s", name, result.Error)
			} else {
				log.Printf("✅ Scheduled fetch completed for %s: %d new articles", name, result.Inserted)
			}
		})

		if err != nil {
			log.Printf("❌ Failed to schedule source %s: %v", name, err)
		} else {
			log.Printf("📅 Scheduled source %s with cron: %s", name, src.Schedule)
		}
	}

	// Start cron scheduler
	c.Start()
	defer c.Stop()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server
	go func() {
		log.Printf("🚀 Starting server on %s:%s", cfg.Host, cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down server...")

	// Cancel background tasks
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
