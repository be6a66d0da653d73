package registry

import (
	"context"

	"github.com/google/uuid"

	"github.com/david/prospect-tracker/internal/models"
)

// The registries depend on these interfaces, never on a concrete store. The
// production implementation is internal/db; tests substitute internal/memstore.
// Every Get returns (nil, nil) when nothing matches. Every update reports
// whether a row was touched so the registry can translate misses to ErrNotFound.

// SearchStore persists immutable search records.
type SearchStore interface {
	InsertSearch(ctx context.Context, s *models.Search) error
	GetSearch(ctx context.Context, id uuid.UUID) (*models.Search, error)
	// ListSearches returns matches ordered by createdAt descending.
	ListSearches(ctx context.Context, f SearchFilter) ([]models.Search, error)
}

// ProspectStore persists prospects. Lookups by URL see deleted rows too: a
// soft-deleted prospect's url still blocks recreation.
type ProspectStore interface {
	InsertProspect(ctx context.Context, p *models.Prospect) error
	GetProspect(ctx context.Context, id uuid.UUID) (*models.Prospect, error)
	GetProspectByURL(ctx context.Context, url string) (*models.Prospect, error)
	UpdateProspectStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
	UpdateProspectNotes(ctx context.Context, id uuid.UUID, notes string) (bool, error)
	SetProspectDeleted(ctx context.Context, id uuid.UUID, deleted bool) (bool, error)
	// ListProspects returns matches ordered by createdAt descending.
	ListProspects(ctx context.Context, f ProspectFilter) ([]models.Prospect, error)
}

// PitchStore persists pitches. Website lookups see deleted rows, same rule as
// prospect URLs.
type PitchStore interface {
	// InsertPitch writes the pitch and, when markPitched is set, transitions
	// that prospect's status to "pitched" in the same transaction. Both writes
	// commit or neither does.
	InsertPitch(ctx context.Context, p *models.Pitch, markPitched *uuid.UUID) error
	GetPitch(ctx context.Context, id uuid.UUID) (*models.Pitch, error)
	GetPitchByWebsite(ctx context.Context, website string) (*models.Pitch, error)
	GetPitchByProspect(ctx context.Context, prospectID uuid.UUID) (*models.Pitch, error)
	SetPitchDeleted(ctx context.Context, id uuid.UUID, deleted bool) (bool, error)
	// ListPitches returns matches ordered by createdAt descending.
	ListPitches(ctx context.Context, f PitchFilter) ([]models.Pitch, error)
}

// Store is the full persistence surface, for implementations that back all
// three registries at once.
type Store interface {
	SearchStore
	ProspectStore
	PitchStore
}

// SearchFilter narrows a search listing. Nil pointer means "not filtered".
// Limit <= 0 means unlimited.
type SearchFilter struct {
	Industry *string
	Location *string
	Limit    int
}

// ProspectFilter narrows a prospect listing. Soft-deleted rows are excluded
// unless IncludeDeleted is set; that is the only soft-delete switch.
type ProspectFilter struct {
	Status         *string
	IsLocal        *bool
	SearchID       *uuid.UUID
	Limit          int
	IncludeDeleted bool
}

// PitchFilter narrows a pitch listing. Website short-circuiting is handled by
// the registry, not the store.
type PitchFilter struct {
	Industry       *string
	IsLocal        *bool
	Limit          int
	IncludeDeleted bool
}
