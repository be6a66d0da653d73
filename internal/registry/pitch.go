package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/david/prospect-tracker/internal/models"
)

// PitchRegistry manages generated outreach content. Creating a pitch is the
// one cross-entity command in the system: when the pitch links to a prospect,
// that prospect's status moves to "pitched" atomically with the insert.
type PitchRegistry struct {
	store     PitchStore
	prospects ProspectStore
}

func NewPitchRegistry(store PitchStore, prospects ProspectStore) *PitchRegistry {
	return &PitchRegistry{store: store, prospects: prospects}
}

// PitchInput carries the fields of one generated pitch. CompanyName, Website,
// Industry and a non-empty PitchOptions are required; the rest default.
type PitchInput struct {
	CompanyName            string                `json:"companyName"`
	Owner                  *string               `json:"owner,omitempty"`
	Website                string                `json:"website"`
	Industry               string                `json:"industry"`
	IsLocal                bool                  `json:"isLocal"`
	Location               models.PitchLocation  `json:"location"`
	Contact                models.PitchContact   `json:"contact"`
	Services               []models.Service      `json:"services"`
	PainPoints             []string              `json:"painPoints"`
	PitchOptions           []models.PitchOption  `json:"pitchOptions"`
	RecommendedPitch       int                   `json:"recommendedPitch"`
	RecommendedPitchReason string                `json:"recommendedPitchReason"`
	RecommendedChannel     string                `json:"recommendedChannel"`
	Outreach               *models.Outreach      `json:"outreach,omitempty"`
	Sources                []models.PitchSource  `json:"sources"`
	CustomInstructions     *string               `json:"customInstructions,omitempty"`
}

// CreateResult reports what Create did beyond the new id.
type CreateResult struct {
	PitchID    uuid.UUID
	ProspectID *uuid.UUID
	Linked     bool
}

func (in *PitchInput) validate() error {
	if in.CompanyName == "" {
		return missingField("companyName")
	}
	if in.Website == "" {
		return missingField("website")
	}
	if in.Industry == "" {
		return missingField("industry")
	}
	if len(in.PitchOptions) == 0 {
		return &ValidationError{Field: "pitchOptions", Reason: "must be a non-empty array"}
	}
	return nil
}

// Create registers a pitch for a website. A pitch already holding that
// website, deleted or not, makes this a *ConflictError carrying the existing
// id. When a prospect exists whose url equals the website (case-sensitive
// exact match) the pitch links to it and the prospect is marked "pitched" in
// the same store transaction as the insert.
func (r *PitchRegistry) Create(ctx context.Context, in PitchInput) (CreateResult, error) {
	if err := in.validate(); err != nil {
		return CreateResult{}, err
	}

	existing, err := r.store.GetPitchByWebsite(ctx, in.Website)
	if err != nil {
		return CreateResult{}, storeErr("get pitch by website", err)
	}
	if existing != nil {
		return CreateResult{}, &ConflictError{Key: "website", Value: in.Website, ExistingID: existing.ID}
	}

	var prospectID *uuid.UUID
	prospect, err := r.prospects.GetProspectByURL(ctx, in.Website)
	if err != nil {
		return CreateResult{}, storeErr("get prospect by url", err)
	}
	if prospect != nil {
		prospectID = &prospect.ID
	}

	outreach := models.Outreach{PrimaryChannel: "Email", Alternatives: []models.OutreachAlternative{}}
	if in.Outreach != nil {
		outreach = *in.Outreach
		if outreach.Alternatives == nil {
			outreach.Alternatives = []models.OutreachAlternative{}
		}
	}
	channel := in.RecommendedChannel
	if channel == "" {
		channel = "Email"
	}

	p := &models.Pitch{
		ID:                     uuid.New(),
		ProspectID:             prospectID,
		CompanyName:            in.CompanyName,
		Owner:                  in.Owner,
		Website:                in.Website,
		Industry:               in.Industry,
		IsLocal:                in.IsLocal,
		Location:               in.Location,
		Contact:                in.Contact,
		Services:               emptyIfNil(in.Services),
		PainPoints:             emptyIfNil(in.PainPoints),
		PitchOptions:           in.PitchOptions,
		RecommendedPitch:       in.RecommendedPitch,
		RecommendedPitchReason: in.RecommendedPitchReason,
		RecommendedChannel:     channel,
		Outreach:               outreach,
		Sources:                emptyIfNil(in.Sources),
		CustomInstructions:     in.CustomInstructions,
		CreatedAt:              time.Now().UTC(),
	}

	if err := r.store.InsertPitch(ctx, p, prospectID); err != nil {
		return CreateResult{}, storeErr("insert pitch", err)
	}

	return CreateResult{PitchID: p.ID, ProspectID: prospectID, Linked: prospectID != nil}, nil
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// FindByWebsite is an exact-match lookup, deleted rows included. Returns nil
// when nothing matches.
func (r *PitchRegistry) FindByWebsite(ctx context.Context, website string) (*models.Pitch, error) {
	return r.store.GetPitchByWebsite(ctx, website)
}

// GetByID returns nil when the pitch does not exist.
func (r *PitchRegistry) GetByID(ctx context.Context, id uuid.UUID) (*models.Pitch, error) {
	return r.store.GetPitch(ctx, id)
}

// GetByProspect returns the pitch linked to a prospect, nil when there is none.
func (r *PitchRegistry) GetByProspect(ctx context.Context, prospectID uuid.UUID) (*models.Pitch, error) {
	return r.store.GetPitchByProspect(ctx, prospectID)
}

// ListOptions narrows a pitch listing at the registry level. A website filter
// short-circuits every other predicate to a single exact-match result.
type ListOptions struct {
	Industry       *string
	IsLocal        *bool
	Website        *string
	Limit          int
	IncludeDeleted bool
}

// ListFiltered returns pitches newest first, each enriched with the current
// status of its linked prospect (null when unlinked or the prospect is gone).
// A website filter yields at most one result and an empty slice, not an
// error, when the website is unknown or its pitch is hidden by soft-delete.
func (r *PitchRegistry) ListFiltered(ctx context.Context, opts ListOptions) ([]models.PitchWithStatus, error) {
	if opts.Website != nil {
		p, err := r.store.GetPitchByWebsite(ctx, *opts.Website)
		if err != nil {
			return nil, storeErr("get pitch by website", err)
		}
		if p == nil || (p.IsDeleted && !opts.IncludeDeleted) {
			return []models.PitchWithStatus{}, nil
		}
		enriched, err := r.withProspectStatus(ctx, *p)
		if err != nil {
			return nil, err
		}
		return []models.PitchWithStatus{enriched}, nil
	}

	pitches, err := r.store.ListPitches(ctx, PitchFilter{
		Industry:       opts.Industry,
		IsLocal:        opts.IsLocal,
		Limit:          opts.Limit,
		IncludeDeleted: opts.IncludeDeleted,
	})
	if err != nil {
		return nil, storeErr("list pitches", err)
	}

	out := make([]models.PitchWithStatus, 0, len(pitches))
	for _, p := range pitches {
		enriched, err := r.withProspectStatus(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, enriched)
	}
	return out, nil
}

func (r *PitchRegistry) withProspectStatus(ctx context.Context, p models.Pitch) (models.PitchWithStatus, error) {
	enriched := models.PitchWithStatus{Pitch: p}
	if p.ProspectID == nil {
		return enriched, nil
	}
	prospect, err := r.prospects.GetProspect(ctx, *p.ProspectID)
	if err != nil {
		return enriched, storeErr("get prospect", err)
	}
	if prospect != nil {
		status := prospect.Status
		enriched.ProspectStatus = &status
	}
	return enriched, nil
}

// SoftDelete flags the pitch as deleted. The linked prospect's status is left
// alone; only creation drives the status transition.
func (r *PitchRegistry) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ok, err := r.store.SetPitchDeleted(ctx, id, true)
	if err != nil {
		return storeErr("soft delete pitch", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Stats scans every non-deleted pitch. Industries keeps first-seen scan order,
// which on the ordered store means newest pitch first.
func (r *PitchRegistry) Stats(ctx context.Context) (models.PitchStats, error) {
	pitches, err := r.store.ListPitches(ctx, PitchFilter{})
	if err != nil {
		return models.PitchStats{}, storeErr("list pitches", err)
	}

	stats := models.PitchStats{Total: len(pitches), Industries: []string{}}
	seen := make(map[string]bool)
	for _, p := range pitches {
		if p.IsLocal {
			stats.Local++
		}
		if !seen[p.Industry] {
			seen[p.Industry] = true
			stats.Industries = append(stats.Industries, p.Industry)
		}
	}
	stats.NonLocal = stats.Total - stats.Local
	return stats, nil
}
