package registry_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/david/prospect-tracker/internal/memstore"
	"github.com/david/prospect-tracker/internal/registry"
)

func TestSearchRecord_NormalizesQueries(t *testing.T) {
	ctx := context.Background()
	r := registry.NewSearchRegistry(memstore.New())

	id, err := r.Record(ctx, registry.SearchInput{Industry: "plumbing", Location: "Austin, TX", Count: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := r.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == nil {
		t.Fatal("search not found after record")
	}
	if s.SearchQueries == nil {
		t.Error("expected searchQueries to default to an empty slice, got nil")
	}
}

func TestSearchListRecent_DefaultsToTen(t *testing.T) {
	ctx := context.Background()
	r := registry.NewSearchRegistry(memstore.New())

	for i := 0; i < 12; i++ {
		_, err := r.Record(ctx, registry.SearchInput{
			Industry: fmt.Sprintf("industry-%d", i),
			Location: "Austin, TX",
			Count:    10,
		})
		if err != nil {
			t.Fatalf("seed %d failed: %v", i, err)
		}
	}

	recent, err := r.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != registry.DefaultRecentSearches {
		t.Fatalf("expected %d searches, got %d", registry.DefaultRecentSearches, len(recent))
	}
	// Newest first: the most recent insert leads.
	if recent[0].Industry != "industry-11" {
		t.Errorf("expected newest search first, got %q", recent[0].Industry)
	}

	limited, err := r.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("expected 3 searches, got %d", len(limited))
	}
}

func TestSearchList_Filters(t *testing.T) {
	ctx := context.Background()
	r := registry.NewSearchRegistry(memstore.New())

	seed := []registry.SearchInput{
		{Industry: "plumbing", Location: "Austin, TX", Count: 10},
		{Industry: "roofing", Location: "Austin, TX", Count: 10},
		{Industry: "plumbing", Location: "Dallas, TX", Count: 10},
	}
	for _, in := range seed {
		if _, err := r.Record(ctx, in); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	byIndustry, err := r.ListByIndustry(ctx, "plumbing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byIndustry) != 2 {
		t.Errorf("expected 2 plumbing searches, got %d", len(byIndustry))
	}

	byLocation, err := r.ListByLocation(ctx, "Austin, TX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byLocation) != 2 {
		t.Errorf("expected 2 Austin searches, got %d", len(byLocation))
	}

	industry := "plumbing"
	location := "Dallas, TX"
	both, err := r.List(ctx, registry.SearchFilter{Industry: &industry, Location: &location})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(both) != 1 {
		t.Errorf("expected 1 search matching both filters, got %d", len(both))
	}
}
