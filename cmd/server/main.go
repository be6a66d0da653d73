package main

import (
	"context"
	"log"

	"github.com/david/prospect-tracker/internal/api"
	"github.com/david/prospect-tracker/internal/config"
	"github.com/david/prospect-tracker/internal/db"
	"github.com/david/prospect-tracker/internal/enrich"
)

func main() {
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

	enricher, err := enrich.NewEnricher()
	if err != nil {
		log.Fatalf("Failed to load enrichment rules: %v", err)
	}

	srv := api.NewServer(db.NewStore(pool), enricher, cfg.CORSOrigins)
	log.Printf("Server starting on port %s...", cfg.Port)
	if err := srv.Start(cfg.Port); err != nil {
		log.Fatal(err)
	}
}
