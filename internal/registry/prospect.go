package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/david/prospect-tracker/internal/models"
)

// ProspectRegistry manages discovered businesses and their status lifecycle.
// Duplicate detection against stored prospects belongs to the intake command;
// CreateBatch inserts unconditionally.
type ProspectRegistry struct {
	store ProspectStore
}

func NewProspectRegistry(store ProspectStore) *ProspectRegistry {
	return &ProspectRegistry{store: store}
}

// ProspectInput is one business as submitted by the discovery agent.
type ProspectInput struct {
	Name         string   `json:"name"`
	URL          string   `json:"url"`
	City         *string  `json:"city,omitempty"`
	LocationText string   `json:"locationText"`
	IsLocal      bool     `json:"isLocal"`
	Confidence   string   `json:"confidence"`
	Sources      []string `json:"sources"`
	Notes        *string  `json:"notes,omitempty"`
}

// CreateBatch inserts every input prospect with status "new". Insertion is
// sequential; a failure mid-batch leaves earlier inserts in place (best-effort,
// the ids created so far are returned alongside the error).
func (r *ProspectRegistry) CreateBatch(ctx context.Context, searchID *uuid.UUID, inputs []ProspectInput) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		sources := in.Sources
		if sources == nil {
			sources = []string{}
		}
		confidence := in.Confidence
		if confidence == "" {
			confidence = models.ConfidenceMedium
		}

		p := &models.Prospect{
			ID:           uuid.New(),
			SearchID:     searchID,
			Name:         in.Name,
			URL:          in.URL,
			City:         in.City,
			LocationText: in.LocationText,
			IsLocal:      in.IsLocal,
			Confidence:   confidence,
			Sources:      sources,
			Notes:        in.Notes,
			Status:       models.StatusNew,
			CreatedAt:    time.Now().UTC(),
		}
		if err := r.store.InsertProspect(ctx, p); err != nil {
			return ids, storeErr("insert prospect", err)
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// FindByURL is an exact-match lookup used for duplicate detection and for
// cross-linking during pitch creation. Soft-deleted prospects are returned
// too: their url still blocks recreation. Returns nil when nothing matches.
func (r *ProspectRegistry) FindByURL(ctx context.Context, url string) (*models.Prospect, error) {
	return r.store.GetProspectByURL(ctx, url)
}

// GetByID returns nil when the prospect does not exist.
func (r *ProspectRegistry) GetByID(ctx context.Context, id uuid.UUID) (*models.Prospect, error) {
	return r.store.GetProspect(ctx, id)
}

// UpdateStatus overwrites the prospect's status unconditionally. Allowed-value
// checks are a boundary concern; the registry accepts any string.
func (r *ProspectRegistry) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	ok, err := r.store.UpdateProspectStatus(ctx, id, status)
	if err != nil {
		return storeErr("update prospect status", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// AppendNotes merges text into the prospect's notes, separated from any
// existing notes by a blank line. Used by contact enrichment.
func (r *ProspectRegistry) AppendNotes(ctx context.Context, id uuid.UUID, text string) error {
	p, err := r.store.GetProspect(ctx, id)
	if err != nil {
		return storeErr("get prospect", err)
	}
	if p == nil {
		return ErrNotFound
	}

	notes := text
	if p.Notes != nil && *p.Notes != "" {
		notes = *p.Notes + "\n\n" + text
	}

	ok, err := r.store.UpdateProspectNotes(ctx, id, notes)
	if err != nil {
		return storeErr("update prospect notes", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flags the prospect as deleted. The row stays behind for history
// and keeps blocking its url.
func (r *ProspectRegistry) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ok, err := r.store.SetProspectDeleted(ctx, id, true)
	if err != nil {
		return storeErr("soft delete prospect", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ListFiltered returns prospects newest first. Soft-deleted rows are excluded
// unless the filter explicitly includes them; the limit truncates the already
// filtered, already ordered result.
func (r *ProspectRegistry) ListFiltered(ctx context.Context, f ProspectFilter) ([]models.Prospect, error) {
	return r.store.ListProspects(ctx, f)
}

// ListBySearch returns the prospects produced by one discovery run.
func (r *ProspectRegistry) ListBySearch(ctx context.Context, searchID uuid.UUID) ([]models.Prospect, error) {
	return r.store.ListProspects(ctx, ProspectFilter{SearchID: &searchID})
}

// PipelineStats scans every non-deleted prospect and buckets by status.
// Total counts all of them; unrecognized statuses fall into no bucket, so the
// bucket sum can be less than Total but never more.
func (r *ProspectRegistry) PipelineStats(ctx context.Context) (models.PipelineStats, error) {
	prospects, err := r.store.ListProspects(ctx, ProspectFilter{})
	if err != nil {
		return models.PipelineStats{}, storeErr("list prospects", err)
	}

	stats := models.PipelineStats{Total: len(prospects)}
	for _, p := range prospects {
		switch p.Status {
		case models.StatusNew:
			stats.New++
		case models.StatusPitched:
			stats.Pitched++
		case models.StatusContacted:
			stats.Contacted++
		case models.StatusResponded:
			stats.Responded++
		case models.StatusConverted:
			stats.Converted++
		}
	}
	return stats, nil
}
