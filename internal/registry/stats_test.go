package registry_test

import (
	"context"
	"testing"

	"github.com/david/prospect-tracker/internal/memstore"
	"github.com/david/prospect-tracker/internal/registry"
)

// End-to-end pipeline scenario: discovery intake, pitch generation, manual
// status updates, then the overview rollup.
func TestAggregatorOverview(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	prospects := registry.NewProspectRegistry(store)
	pitches := registry.NewPitchRegistry(store, store)
	agg := registry.NewAggregator(prospects, pitches)

	intakeResult, err := newIntake(store).Run(ctx, validIntake(
		registry.ProspectInput{Name: "Ace Plumbing", URL: "https://aceplumbing.com", IsLocal: true},
		registry.ProspectInput{Name: "Drain Kings", URL: "https://drainkings.com"},
		registry.ProspectInput{Name: "Pipe Pros", URL: "https://pipepros.com"},
	))
	if err != nil {
		t.Fatalf("intake failed: %v", err)
	}
	if intakeResult.ProspectsCreated != 3 {
		t.Fatalf("expected 3 prospects, got %d", intakeResult.ProspectsCreated)
	}

	// Pitching Ace moves it to "pitched" as part of pitch creation.
	pitchIn := validPitch("https://aceplumbing.com")
	pitchIn.IsLocal = true
	if _, err := pitches.Create(ctx, pitchIn); err != nil {
		t.Fatalf("pitch failed: %v", err)
	}

	drain, err := prospects.FindByURL(ctx, "https://drainkings.com")
	if err != nil || drain == nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if err := prospects.UpdateStatus(ctx, drain.ID, "converted"); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	overview, err := agg.Overview(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := overview.Prospects
	if p.Total != 3 || p.New != 1 || p.Pitched != 1 || p.Converted != 1 {
		t.Errorf("unexpected prospect stats: %+v", p)
	}
	if overview.Pitches.Total != 1 || overview.Pitches.Local != 1 {
		t.Errorf("unexpected pitch stats: %+v", overview.Pitches)
	}
	if len(overview.Pitches.Industries) != 1 || overview.Pitches.Industries[0] != "plumbing" {
		t.Errorf("unexpected industries: %v", overview.Pitches.Industries)
	}
}
