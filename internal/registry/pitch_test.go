package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/david/prospect-tracker/internal/memstore"
	"github.com/david/prospect-tracker/internal/models"
	"github.com/david/prospect-tracker/internal/registry"
)

func validPitch(website string) registry.PitchInput {
	return registry.PitchInput{
		CompanyName: "Ace Plumbing",
		Website:     website,
		Industry:    "plumbing",
		PitchOptions: []models.PitchOption{
			{Angle: "pain-point", SubjectLine: "Your website", Message: "Hi there", WordCount: 2},
		},
	}
}

func TestPitchCreate_LinksProspectAndMarksPitched(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	prospects := registry.NewProspectRegistry(store)
	pitches := registry.NewPitchRegistry(store, store)

	ids := seedProspects(t, prospects, registry.ProspectInput{Name: "Ace Plumbing", URL: "https://aceplumbing.com"})

	result, err := pitches.Create(ctx, validPitch("https://aceplumbing.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Linked {
		t.Error("expected pitch to link to the existing prospect")
	}
	if result.ProspectID == nil || *result.ProspectID != ids[0] {
		t.Errorf("expected prospectId %s, got %v", ids[0], result.ProspectID)
	}

	p, _ := prospects.GetByID(ctx, ids[0])
	if p.Status != "pitched" {
		t.Errorf("expected linked prospect marked pitched, got %q", p.Status)
	}

	byProspect, err := pitches.GetByProspect(ctx, ids[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byProspect == nil || byProspect.ID != result.PitchID {
		t.Error("expected GetByProspect to return the new pitch")
	}
}

func TestPitchCreate_UnlinkedWhenNoProspectMatches(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	pitches := registry.NewPitchRegistry(store, store)

	result, err := pitches.Create(ctx, validPitch("https://nobody.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Linked || result.ProspectID != nil {
		t.Errorf("expected unlinked pitch, got %+v", result)
	}
}

func TestPitchCreate_ConflictOnWebsite(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	pitches := registry.NewPitchRegistry(store, store)

	first, err := pitches.Create(ctx, validPitch("https://aceplumbing.com"))
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err = pitches.Create(ctx, validPitch("https://aceplumbing.com"))
	var ce *registry.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if ce.ExistingID != first.PitchID {
		t.Errorf("expected conflict to carry existing pitch id %s, got %s", first.PitchID, ce.ExistingID)
	}

	// Soft-deleting the pitch does not free the website.
	if err := pitches.SoftDelete(ctx, first.PitchID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	if _, err := pitches.Create(ctx, validPitch("https://aceplumbing.com")); !errors.As(err, &ce) {
		t.Errorf("expected conflict after soft delete, got %v", err)
	}
}

func TestPitchCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*registry.PitchInput)
		field  string
	}{
		{"missing companyName", func(in *registry.PitchInput) { in.CompanyName = "" }, "companyName"},
		{"missing website", func(in *registry.PitchInput) { in.Website = "" }, "website"},
		{"missing industry", func(in *registry.PitchInput) { in.Industry = "" }, "industry"},
		{"empty pitchOptions", func(in *registry.PitchInput) { in.PitchOptions = nil }, "pitchOptions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			in := validPitch("https://aceplumbing.com")
			tt.mutate(&in)

			_, err := registry.NewPitchRegistry(store, store).Create(context.Background(), in)
			var ve *registry.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, ve.Field)
			}
		})
	}
}

func TestPitchCreate_Defaults(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	pitches := registry.NewPitchRegistry(store, store)

	result, err := pitches.Create(ctx, validPitch("https://aceplumbing.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, _ := pitches.GetByID(ctx, result.PitchID)
	if p.RecommendedChannel != "Email" {
		t.Errorf("expected recommended channel to default to Email, got %q", p.RecommendedChannel)
	}
	if p.Outreach.PrimaryChannel != "Email" {
		t.Errorf("expected outreach primary channel to default to Email, got %q", p.Outreach.PrimaryChannel)
	}
	if p.Services == nil || p.PainPoints == nil || p.Sources == nil || p.Outreach.Alternatives == nil {
		t.Error("expected nil collections normalized to empty slices")
	}
}

func TestPitchListFiltered_WebsiteShortCircuit(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	pitches := registry.NewPitchRegistry(store, store)

	created, err := pitches.Create(ctx, validPitch("https://aceplumbing.com"))
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	website := "https://aceplumbing.com"
	got, err := pitches.ListFiltered(ctx, registry.ListOptions{Website: &website})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != created.PitchID {
		t.Fatalf("expected the one matching pitch, got %d", len(got))
	}

	unknown := "https://nobody.com"
	got, err = pitches.ListFiltered(ctx, registry.ListOptions{Website: &unknown})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result for unknown website, got %d", len(got))
	}

	// Other filters are ignored when website is set: a non-matching industry
	// still returns the exact match.
	industry := "roofing"
	got, err = pitches.ListFiltered(ctx, registry.ListOptions{Website: &website, Industry: &industry})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected website filter to short-circuit industry, got %d results", len(got))
	}

	// Soft-deleted pitches are hidden unless explicitly included.
	if err := pitches.SoftDelete(ctx, created.PitchID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	got, _ = pitches.ListFiltered(ctx, registry.ListOptions{Website: &website})
	if len(got) != 0 {
		t.Errorf("expected deleted pitch hidden, got %d", len(got))
	}
	got, _ = pitches.ListFiltered(ctx, registry.ListOptions{Website: &website, IncludeDeleted: true})
	if len(got) != 1 {
		t.Errorf("expected deleted pitch visible with IncludeDeleted, got %d", len(got))
	}
}

func TestPitchListFiltered_ProspectStatusEnrichment(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	prospects := registry.NewProspectRegistry(store)
	pitches := registry.NewPitchRegistry(store, store)

	ids := seedProspects(t, prospects, registry.ProspectInput{Name: "Ace Plumbing", URL: "https://aceplumbing.com"})
	if _, err := pitches.Create(ctx, validPitch("https://aceplumbing.com")); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	unlinked := validPitch("https://nobody.com")
	unlinked.CompanyName = "Nobody Inc"
	if _, err := pitches.Create(ctx, unlinked); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// The listing reflects the prospect's status at read time, not at pitch
	// creation.
	if err := prospects.UpdateStatus(ctx, ids[0], "responded"); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	got, err := pitches.ListFiltered(ctx, registry.ListOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 pitches, got %d", len(got))
	}
	for _, p := range got {
		switch p.Website {
		case "https://aceplumbing.com":
			if p.ProspectStatus == nil || *p.ProspectStatus != "responded" {
				t.Errorf("expected prospectStatus responded, got %v", p.ProspectStatus)
			}
		case "https://nobody.com":
			if p.ProspectStatus != nil {
				t.Errorf("expected null prospectStatus for unlinked pitch, got %q", *p.ProspectStatus)
			}
		}
	}
}

func TestPitchStats(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	pitches := registry.NewPitchRegistry(store, store)

	seed := []struct {
		website  string
		industry string
		local    bool
	}{
		{"https://a.com", "plumbing", true},
		{"https://b.com", "roofing", false},
		{"https://c.com", "plumbing", true},
	}
	var lastID registry.CreateResult
	for _, s := range seed {
		in := validPitch(s.website)
		in.Industry = s.industry
		in.IsLocal = s.local
		result, err := pitches.Create(ctx, in)
		if err != nil {
			t.Fatalf("seed %s failed: %v", s.website, err)
		}
		lastID = result
	}

	stats, err := pitches.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 3 || stats.Local != 2 || stats.NonLocal != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if len(stats.Industries) != 2 {
		t.Errorf("expected 2 distinct industries, got %v", stats.Industries)
	}

	// Deleted pitches drop out of the stats entirely.
	if err := pitches.SoftDelete(ctx, lastID.PitchID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	stats, err = pitches.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 2 || stats.Local != 1 {
		t.Errorf("expected deleted pitch excluded, got %+v", stats)
	}
}
