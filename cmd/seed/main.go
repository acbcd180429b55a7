// Package main provides a tool to seed an account with sample planning data.
//
// This opens the database directly and runs the same seeding the API exposes,
// so a fresh install has a demo family to explore without going through HTTP.
//
// Usage:
//
//	DB_PATH=~/summerplan/db go run ./cmd/seed --account acc_xxx
//	DB_PATH=~/summerplan/db go run ./cmd/seed --account acc_xxx --purge
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/service"
	"github.com/summerplanapp/summerplan-server/internal/store"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

var (
	account     = flag.String("account", "", "Account ID to seed (required)")
	purge       = flag.Bool("purge", false, "Remove sample rows instead of creating them")
	schoolEnd   = flag.String("school-end", "2026-06-05", "Default school end date")
	schoolStart = flag.String("school-start", "2026-08-19", "Default school start date")
)

func main() {
	flag.Parse()

	if *account == "" {
		log.Fatal("--account is required")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/summerplan/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NoopPublisher{})
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	season := config.SeasonConfig{
		DefaultSchoolEnd:   *schoolEnd,
		DefaultSchoolStart: *schoolStart,
		BudgetWarnFraction: 0.8,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	profiles := service.NewProfileService(s, validation.New(), season, logger)
	samples := service.NewSampleService(s, profiles, logger)

	ctx := context.Background()

	if *purge {
		removed, err := samples.Purge(ctx, *account)
		if err != nil {
			log.Fatalf("Failed to purge sample data: %v", err)
		}
		fmt.Printf("Removed %d sample rows for %s\n", removed, *account)
		return
	}

	if err := samples.Seed(ctx, *account); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}
	fmt.Printf("Seeded sample family for %s\n", *account)
}
