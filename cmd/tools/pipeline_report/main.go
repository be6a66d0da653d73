package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/david/prospect-tracker/internal/config"
	"github.com/david/prospect-tracker/internal/db"
	"github.com/david/prospect-tracker/internal/registry"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	store := db.NewStore(pool)
	agg := registry.NewAggregator(
		registry.NewProspectRegistry(store),
		registry.NewPitchRegistry(store, store),
	)

	overview, err := agg.Overview(ctx)
	if err != nil {
		log.Fatalf("Stats query failed: %v", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Prospect Pipeline")
	t.AppendHeader(table.Row{"Status", "Count"})
	t.AppendRow(table.Row{"new", overview.Prospects.New})
	t.AppendRow(table.Row{"pitched", overview.Prospects.Pitched})
	t.AppendRow(table.Row{"contacted", overview.Prospects.Contacted})
	t.AppendRow(table.Row{"responded", overview.Prospects.Responded})
	t.AppendRow(table.Row{"converted", overview.Prospects.Converted})
	t.AppendFooter(table.Row{"Total", overview.Prospects.Total})
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Pitches")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Total", overview.Pitches.Total})
	t.AppendRow(table.Row{"Local", overview.Pitches.Local})
	t.AppendRow(table.Row{"Non-local", overview.Pitches.NonLocal})
	t.AppendRow(table.Row{"Industries", strings.Join(overview.Pitches.Industries, ", ")})
	t.Render()
}
