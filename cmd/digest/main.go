package main

import (
	"context"
	"flag"
	"log"

	"github.com/CategoryLeaders/productlobby-sub003/internal/config"
	"github.com/CategoryLeaders/productlobby-sub003/internal/digest"
	"github.com/CategoryLeaders/productlobby-sub003/internal/logger"
	"github.com/CategoryLeaders/productlobby-sub003/internal/mailer"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
)

// One-shot digest runner for cron-less deployments and manual resends.
func main() {
	creatorID := flag.Uint("creator", 0, "send only to this creator ID (0 = all eligible creators)")
	dryRun := flag.Bool("dry-run", false, "log digests instead of sending them")
	flag.Parse()

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := repository.InitDatabase(cfg.Database, cfg.App)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repository.CloseDatabase(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	var sender mailer.Sender
	if *dryRun || cfg.Mail.SMTPHost == "" {
		sender = mailer.LogMailer{}
		log.Println("⚠️  Running in dry-run mode")
	} else {
		sender = mailer.NewSMTPMailer(cfg.Mail)
	}

	appLogger := logger.New(cfg.App.LogLevel)
	service := digest.NewService(repository.NewDigestRepository(db), sender, appLogger)

	var result *digest.Result
	if *creatorID != 0 {
		result, err = service.RunForCreator(uint(*creatorID))
		if err != nil {
			log.Fatalf("Digest failed for creator %d: %v", *creatorID, err)
		}
	} else {
		result = service.Run(context.Background())
	}

	log.Printf("✅ Digest run complete: sent=%d failed=%d", result.Sent, result.Failed)
	for _, r := range result.Results {
		if !r.Sent {
			log.Printf("⚠️  creator %d (%s): %s", r.CreatorID, r.Email, r.Reason)
		}
	}
}
