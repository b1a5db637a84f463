package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api"
	"github.com/CategoryLeaders/productlobby-sub003/internal/api/websocket"
	"github.com/CategoryLeaders/productlobby-sub003/internal/config"
	"github.com/CategoryLeaders/productlobby-sub003/internal/digest"
	"github.com/CategoryLeaders/productlobby-sub003/internal/logger"
	"github.com/CategoryLeaders/productlobby-sub003/internal/mailer"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("🚀 Starting ProductLobby API...")
	log.Printf("Environment: %s", cfg.App.Environment)

	if cfg.App.Environment == "development" {
		log.Printf("Config loaded:\n%s", cfg.SafeString())
	}

	// Database connection
	db, err := repository.InitDatabase(cfg.Database, cfg.App)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Println("✅ Database connected")

	defer func() {
		if err := repository.CloseDatabase(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("✅ Database migrated")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	digestRepo := repository.NewDigestRepository(db)

	// Initialize Redis (optional for development, required for production)
	redisClient, err := repository.NewRedisClient(cfg.Redis)
	if err != nil && cfg.App.Environment == "production" {
		log.Fatalf("❌ Failed to connect to Redis (required in production): %v", err)
	}
	if redisClient != nil {
		defer repository.CloseRedisClient(redisClient)
		log.Println("✅ Redis connected")
	} else {
		log.Println("⚠️  Redis not available - token revocation and digest locking disabled")
	}

	// Mailer: real SMTP only when a host is configured
	var sender mailer.Sender
	if cfg.Mail.SMTPHost != "" {
		sender = mailer.NewSMTPMailer(cfg.Mail)
	} else {
		sender = mailer.LogMailer{}
		log.Println("⚠️  SMTP not configured - digests will be logged, not sent")
	}

	// Weekly digest scheduler
	appLogger := logger.New(cfg.App.LogLevel)
	digestService := digest.NewService(digestRepo, sender, appLogger)
	digestScheduler := digest.NewScheduler(digestService, redisClient, cfg.Digest.Schedule)
	if cfg.Digest.Enabled {
		if err := digestScheduler.Start(); err != nil {
			log.Fatalf("Failed to start digest scheduler: %v", err)
		}
	}

	// Live activity feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create API server
	server := api.NewServer(
		cfg,
		userRepo,
		campaignRepo,
		activityRepo,
		pricingRepo,
		digestService,
		hub,
		redisClient,
	)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Println("✅ Application started successfully!")
	log.Println("Press Ctrl+C to stop...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down gracefully...")

	if cfg.Digest.Enabled {
		digestScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("✅ ProductLobby API stopped gracefully")
}
