package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/david/prospect-tracker/internal/config"
	"github.com/david/prospect-tracker/internal/db"
	"github.com/david/prospect-tracker/internal/enrich"
	"github.com/david/prospect-tracker/internal/registry"
)

// Runs contact enrichment across stored prospects that have no notes yet.
// Paced by -rate-limit-ms so a large batch doesn't hammer the target sites.
func main() {
	status := flag.String("status", "", "Only enrich prospects with this status (default: any)")
	limit := flag.Int("limit", 0, "Max prospects to enrich (0 = all)")
	rateLimitMs := flag.Int("rate-limit-ms", 2000, "Delay between site scans in milliseconds")
	timeoutSec := flag.Int("timeout-sec", 30, "Per-site scan timeout in seconds")
	dryRun := flag.Bool("dry-run", false, "List the prospects that would be enriched; do not scan")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store := db.NewStore(pool)
	prospects := registry.NewProspectRegistry(store)

	enricher, err := enrich.NewEnricher()
	if err != nil {
		log.Fatalf("Failed to load enrichment rules: %v", err)
	}

	filter := registry.ProspectFilter{Limit: *limit}
	if *status != "" {
		filter.Status = status
	}
	candidates, err := prospects.ListFiltered(ctx, filter)
	if err != nil {
		log.Fatalf("Failed to list prospects: %v", err)
	}

	scanned, updated, failed := 0, 0, 0
	for i, p := range candidates {
		if p.Notes != nil && *p.Notes != "" {
			continue
		}

		if *dryRun {
			fmt.Printf("[DRY-RUN] %s (%s)\n", p.Name, p.URL)
			continue
		}

		scanCtx, cancel := context.WithTimeout(ctx, time.Duration(*timeoutSec)*time.Second)
		findings, err := enricher.Enrich(scanCtx, p.URL)
		cancel()
		scanned++

		if err != nil {
			log.Printf("scan failed for %s: %v", p.URL, err)
			failed++
		} else {
			if err := prospects.AppendNotes(ctx, p.ID, findings.Summary()); err != nil {
				log.Printf("failed to save notes for %s: %v", p.URL, err)
				failed++
			} else {
				updated++
			}
		}

		if i < len(candidates)-1 && *rateLimitMs > 0 {
			time.Sleep(time.Duration(*rateLimitMs) * time.Millisecond)
		}
	}

	fmt.Printf("\nEnrichment batch done: scanned=%d updated=%d failed=%d\n", scanned, updated, failed)
}
