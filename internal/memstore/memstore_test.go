package memstore

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/david/prospect-tracker/internal/models"
	"github.com/david/prospect-tracker/internal/registry"
)

func TestInsertProspect_UniqueURL(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.InsertProspect(ctx, &models.Prospect{ID: uuid.New(), URL: "https://a.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.InsertProspect(ctx, &models.Prospect{ID: uuid.New(), URL: "https://a.com"}); err == nil {
		t.Fatal("expected unique violation on duplicate url")
	}

	// The constraint spans soft-deleted rows too.
	byURL, _ := s.GetProspectByURL(ctx, "https://a.com")
	if _, err := s.SetProspectDeleted(ctx, byURL.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.InsertProspect(ctx, &models.Prospect{ID: uuid.New(), URL: "https://a.com"}); err == nil {
		t.Fatal("expected unique violation even against a deleted row")
	}
}

func TestInsertPitch_MarksProspectAtomically(t *testing.T) {
	ctx := context.Background()
	s := New()

	prospectID := uuid.New()
	if err := s.InsertProspect(ctx, &models.Prospect{ID: prospectID, URL: "https://a.com", Status: "new"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.InsertPitch(ctx, &models.Pitch{ID: uuid.New(), Website: "https://a.com"}, &prospectID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := s.GetProspect(ctx, prospectID)
	if p.Status != "pitched" {
		t.Errorf("expected status pitched, got %q", p.Status)
	}

	// A failed link inserts nothing.
	missing := uuid.New()
	pitchID := uuid.New()
	if err := s.InsertPitch(ctx, &models.Pitch{ID: pitchID, Website: "https://b.com"}, &missing); err == nil {
		t.Fatal("expected error linking to a missing prospect")
	}
	if got, _ := s.GetPitch(ctx, pitchID); got != nil {
		t.Error("expected no pitch inserted after failed link")
	}
}

func TestInsertPitch_UniqueWebsite(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.InsertPitch(ctx, &models.Pitch{ID: uuid.New(), Website: "https://a.com"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.InsertPitch(ctx, &models.Pitch{ID: uuid.New(), Website: "https://a.com"}, nil); err == nil {
		t.Fatal("expected unique violation on duplicate website")
	}
}

func TestListOrdering_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	urls := []string{"https://a.com", "https://b.com", "https://c.com"}
	for _, u := range urls {
		if err := s.InsertProspect(ctx, &models.Prospect{ID: uuid.New(), URL: u}); err != nil {
			t.Fatalf("insert %s failed: %v", u, err)
		}
	}

	got, err := s.ListProspects(ctx, registry.ProspectFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 prospects, got %d", len(got))
	}
	for i, want := range []string{"https://c.com", "https://b.com", "https://a.com"} {
		if got[i].URL != want {
			t.Errorf("position %d: expected %s, got %s", i, want, got[i].URL)
		}
	}

	limited, err := s.ListProspects(ctx, registry.ProspectFilter{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 2 || limited[0].URL != "https://c.com" {
		t.Errorf("expected limit to keep the newest rows, got %v", limited)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	id := uuid.New()
	if err := s.InsertProspect(ctx, &models.Prospect{ID: id, URL: "https://a.com", Status: "new"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, _ := s.GetProspect(ctx, id)
	first.Status = "mutated"

	second, _ := s.GetProspect(ctx, id)
	if second.Status != "new" {
		t.Error("expected stored record unaffected by caller mutation")
	}
}
