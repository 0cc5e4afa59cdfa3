package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	emailreporter "leadgen-stack/agents/email-reporter"
	leadscorer "leadgen-stack/agents/lead-scorer"
	linkedinscraper "leadgen-stack/agents/linkedin-scraper"
	messagegenerator "leadgen-stack/agents/message-generator"
	redditscraper "leadgen-stack/agents/reddit-scraper"
	"leadgen-stack/shared/activity"
	"leadgen-stack/shared/ai"
	"leadgen-stack/shared/config"
	"leadgen-stack/shared/email"
	"leadgen-stack/shared/scheduler"
	"leadgen-stack/shared/sheets"
	"leadgen-stack/shared/storage"
)

// Tracked leads expire after this long, letting a lead that resurfaces
// months later be collected again.
const trackerMaxAge = 90 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sheetsClient, err := sheets.NewClient(&cfg.Sheets)
	if err != nil {
		log.Fatalf("Failed to create Sheets client: %v", err)
	}

	aiClient, err := ai.NewClient(&cfg.AI)
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}

	tracker, err := storage.NewLeadTracker(cfg.DataDir, trackerMaxAge)
	if err != nil {
		log.Fatalf("Failed to create lead tracker: %v", err)
	}

	activityLog, err := activity.NewLog(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to create activity log: %v", err)
	}

	sender := email.NewSender(&cfg.Email)

	s := scheduler.New(cfg, activityLog)
	for _, agent := range []scheduler.Agent{
		linkedinscraper.New(cfg, sheetsClient, tracker),
		redditscraper.New(cfg, sheetsClient, tracker),
		leadscorer.New(cfg, sheetsClient, aiClient),
		messagegenerator.New(cfg, sheetsClient, aiClient),
		emailreporter.New(cfg, sheetsClient, sender),
	} {
		if err := s.Register(agent); err != nil {
			log.Fatalf("Failed to register %s: %v", agent.Name(), err)
		}
	}

	switch {
	case len(os.Args) > 1 && os.Args[1] == "--once":
		fmt.Println("Running full pipeline once...")
		if err := s.RunPipeline(ctx); err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}

	case len(os.Args) > 2 && os.Args[1] == "--task":
		name := os.Args[2]
		fmt.Printf("Running task %s...\n", name)
		if err := s.RunTask(ctx, name); err != nil {
			log.Fatalf("Task failed: %v", err)
		}

	case len(os.Args) > 1 && os.Args[1] == "--report":
		days := 7
		if len(os.Args) > 2 {
			fmt.Sscanf(os.Args[2], "%d", &days)
		}
		report, err := activityLog.Report(days)
		if err != nil {
			log.Fatalf("Failed to build activity report: %v", err)
		}
		fmt.Print(report)

	default:
		fmt.Println("Starting scheduler...")
		if err := s.Start(ctx); err != nil {
			log.Fatalf("Scheduler failed: %v", err)
		}
	}
}
