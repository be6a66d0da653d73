package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/david/prospect-tracker/internal/models"
)

// DefaultRecentSearches is the limit applied when a recent-search listing is
// requested without one. The bulk HTTP listing uses a larger default; the two
// call sites intentionally differ.
const DefaultRecentSearches = 10

// SearchRegistry records discovery runs. Searches carry no lifecycle: once
// recorded they are never updated or deleted.
type SearchRegistry struct {
	store SearchStore
}

func NewSearchRegistry(store SearchStore) *SearchRegistry {
	return &SearchRegistry{store: store}
}

// SearchInput carries the fields of one discovery run. Required-field checks
// happen at the intake boundary, not here.
type SearchInput struct {
	Industry           string   `json:"industry"`
	Location           string   `json:"location"`
	Count              int      `json:"count"`
	LocalOnly          bool     `json:"localOnly"`
	TotalFound         int      `json:"totalFound"`
	AfterDeduplication int      `json:"afterDeduplication"`
	LocalCount         int      `json:"localCount"`
	ProspectsReturned  int      `json:"prospectsReturned"`
	SearchQueries      []string `json:"searchQueries"`
}

// Record persists one search run and returns its id.
func (r *SearchRegistry) Record(ctx context.Context, in SearchInput) (uuid.UUID, error) {
	queries := in.SearchQueries
	if queries == nil {
		queries = []string{}
	}

	s := &models.Search{
		ID:                 uuid.New(),
		Industry:           in.Industry,
		Location:           in.Location,
		Count:              in.Count,
		LocalOnly:          in.LocalOnly,
		TotalFound:         in.TotalFound,
		AfterDeduplication: in.AfterDeduplication,
		LocalCount:         in.LocalCount,
		ProspectsReturned:  in.ProspectsReturned,
		SearchQueries:      queries,
		CreatedAt:          time.Now().UTC(),
	}

	if err := r.store.InsertSearch(ctx, s); err != nil {
		return uuid.Nil, storeErr("insert search", err)
	}
	return s.ID, nil
}

// ListRecent returns searches newest first. limit <= 0 falls back to
// DefaultRecentSearches.
func (r *SearchRegistry) ListRecent(ctx context.Context, limit int) ([]models.Search, error) {
	if limit <= 0 {
		limit = DefaultRecentSearches
	}
	return r.store.ListSearches(ctx, SearchFilter{Limit: limit})
}

// List returns searches newest first, optionally narrowed by industry and
// location equality.
func (r *SearchRegistry) List(ctx context.Context, f SearchFilter) ([]models.Search, error) {
	return r.store.ListSearches(ctx, f)
}

// GetByID returns nil when the search does not exist.
func (r *SearchRegistry) GetByID(ctx context.Context, id uuid.UUID) (*models.Search, error) {
	return r.store.GetSearch(ctx, id)
}

// ListByIndustry returns every search for one industry, newest first.
func (r *SearchRegistry) ListByIndustry(ctx context.Context, industry string) ([]models.Search, error) {
	return r.store.ListSearches(ctx, SearchFilter{Industry: &industry})
}

// ListByLocation returns every search for one location, newest first.
func (r *SearchRegistry) ListByLocation(ctx context.Context, location string) ([]models.Search, error) {
	return r.store.ListSearches(ctx, SearchFilter{Location: &location})
}
