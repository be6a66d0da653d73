package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/david/prospect-tracker/internal/config"
	"github.com/david/prospect-tracker/internal/db"
	"github.com/david/prospect-tracker/internal/registry"
)

func main() {
	file := flag.String("file", "", "Path to a JSON intake payload (search + prospects)")
	flag.Parse()

	if *file == "" {
		log.Fatal("Please provide a payload file using -file flag")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read payload: %v", err)
	}

	var req registry.IntakeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Fatalf("Failed to parse payload: %v", err)
	}

	cfg := config.Load()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	store := db.NewStore(pool)
	intake := registry.NewIntake(
		registry.NewSearchRegistry(store),
		registry.NewProspectRegistry(store),
	)

	log.Printf("Importing %d prospects from %s", len(req.Prospects), *file)
	result, err := intake.Run(ctx, req)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import finished. Search: %s, Created: %d, Duplicates skipped: %d",
		result.SearchID, result.ProspectsCreated, result.DuplicatesSkipped)
	for _, u := range result.DuplicateURLs {
		log.Printf("  duplicate: %s", u)
	}
}
