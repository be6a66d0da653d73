// Package memstore is an in-memory implementation of the registry store
// interfaces. It backs tests across the repo; the production store is
// internal/db. Semantics mirror the Postgres schema, including the unique
// constraints on prospect urls and pitch websites.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/david/prospect-tracker/internal/models"
	"github.com/david/prospect-tracker/internal/registry"
)

type searchRow struct {
	seq int
	rec models.Search
}

type prospectRow struct {
	seq int
	rec models.Prospect
}

type pitchRow struct {
	seq int
	rec models.Pitch
}

// Store holds all three collections behind one mutex. Each operation is
// atomic, matching the per-operation serializability the registries assume.
type Store struct {
	mu        sync.Mutex
	seq       int
	searches  map[uuid.UUID]*searchRow
	prospects map[uuid.UUID]*prospectRow
	pitches   map[uuid.UUID]*pitchRow
}

var _ registry.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		searches:  make(map[uuid.UUID]*searchRow),
		prospects: make(map[uuid.UUID]*prospectRow),
		pitches:   make(map[uuid.UUID]*pitchRow),
	}
}

func (s *Store) nextSeq() int {
	s.seq++
	return s.seq
}

// ---- searches ----

func (s *Store) InsertSearch(_ context.Context, rec *models.Search) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches[rec.ID] = &searchRow{seq: s.nextSeq(), rec: *rec}
	return nil
}

func (s *Store) GetSearch(_ context.Context, id uuid.UUID) (*models.Search, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.searches[id]
	if !ok {
		return nil, nil
	}
	rec := row.rec
	return &rec, nil
}

func (s *Store) ListSearches(_ context.Context, f registry.SearchFilter) ([]models.Search, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]*searchRow, 0, len(s.searches))
	for _, row := range s.searches {
		if f.Industry != nil && row.rec.Industry != *f.Industry {
			continue
		}
		if f.Location != nil && row.rec.Location != *f.Location {
			continue
		}
		rows = append(rows, row)
	}
	sortNewestFirst(rows, func(r *searchRow) int { return r.seq })

	out := make([]models.Search, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.rec)
	}
	return truncate(out, f.Limit), nil
}

// ---- prospects ----

func (s *Store) InsertProspect(_ context.Context, rec *models.Prospect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.prospects {
		if row.rec.URL == rec.URL {
			return fmt.Errorf("unique violation: prospects.url %q", rec.URL)
		}
	}
	s.prospects[rec.ID] = &prospectRow{seq: s.nextSeq(), rec: *rec}
	return nil
}

func (s *Store) GetProspect(_ context.Context, id uuid.UUID) (*models.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.prospects[id]
	if !ok {
		return nil, nil
	}
	rec := row.rec
	return &rec, nil
}

func (s *Store) GetProspectByURL(_ context.Context, url string) (*models.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.prospects {
		if row.rec.URL == url {
			rec := row.rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateProspectStatus(_ context.Context, id uuid.UUID, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.prospects[id]
	if !ok {
		return false, nil
	}
	row.rec.Status = status
	return true, nil
}

func (s *Store) UpdateProspectNotes(_ context.Context, id uuid.UUID, notes string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.prospects[id]
	if !ok {
		return false, nil
	}
	row.rec.Notes = &notes
	return true, nil
}

func (s *Store) SetProspectDeleted(_ context.Context, id uuid.UUID, deleted bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.prospects[id]
	if !ok {
		return false, nil
	}
	row.rec.IsDeleted = deleted
	return true, nil
}

func (s *Store) ListProspects(_ context.Context, f registry.ProspectFilter) ([]models.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]*prospectRow, 0, len(s.prospects))
	for _, row := range s.prospects {
		if row.rec.IsDeleted && !f.IncludeDeleted {
			continue
		}
		if f.Status != nil && row.rec.Status != *f.Status {
			continue
		}
		if f.IsLocal != nil && row.rec.IsLocal != *f.IsLocal {
			continue
		}
		if f.SearchID != nil && (row.rec.SearchID == nil || *row.rec.SearchID != *f.SearchID) {
			continue
		}
		rows = append(rows, row)
	}
	sortNewestFirst(rows, func(r *prospectRow) int { return r.seq })

	out := make([]models.Prospect, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.rec)
	}
	return truncate(out, f.Limit), nil
}

// ---- pitches ----

func (s *Store) InsertPitch(_ context.Context, rec *models.Pitch, markPitched *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.pitches {
		if row.rec.Website == rec.Website {
			return fmt.Errorf("unique violation: pitches.website %q", rec.Website)
		}
	}
	if markPitched != nil {
		row, ok := s.prospects[*markPitched]
		if !ok {
			return fmt.Errorf("prospect %s not found", markPitched)
		}
		row.rec.Status = models.StatusPitched
	}
	s.pitches[rec.ID] = &pitchRow{seq: s.nextSeq(), rec: *rec}
	return nil
}

func (s *Store) GetPitch(_ context.Context, id uuid.UUID) (*models.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.pitches[id]
	if !ok {
		return nil, nil
	}
	rec := row.rec
	return &rec, nil
}

func (s *Store) GetPitchByWebsite(_ context.Context, website string) (*models.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.pitches {
		if row.rec.Website == website {
			rec := row.rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *Store) GetPitchByProspect(_ context.Context, prospectID uuid.UUID) (*models.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.pitches {
		if row.rec.ProspectID != nil && *row.rec.ProspectID == prospectID {
			rec := row.rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *Store) SetPitchDeleted(_ context.Context, id uuid.UUID, deleted bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.pitches[id]
	if !ok {
		return false, nil
	}
	row.rec.IsDeleted = deleted
	return true, nil
}

func (s *Store) ListPitches(_ context.Context, f registry.PitchFilter) ([]models.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]*pitchRow, 0, len(s.pitches))
	for _, row := range s.pitches {
		if row.rec.IsDeleted && !f.IncludeDeleted {
			continue
		}
		if f.Industry != nil && row.rec.Industry != *f.Industry {
			continue
		}
		if f.IsLocal != nil && row.rec.IsLocal != *f.IsLocal {
			continue
		}
		rows = append(rows, row)
	}
	sortNewestFirst(rows, func(r *pitchRow) int { return r.seq })

	out := make([]models.Pitch, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.rec)
	}
	return truncate(out, f.Limit), nil
}

// ---- helpers ----

// sortNewestFirst orders by insertion sequence descending. Records are
// inserted with monotonically increasing createdAt within a process, so this
// matches the createdAt DESC ordering of the SQL store even when timestamps
// collide inside one test.
func sortNewestFirst[T any](rows []T, seq func(T) int) {
	sort.Slice(rows, func(i, j int) bool { return seq(rows[i]) > seq(rows[j]) })
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
