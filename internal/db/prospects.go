package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/david/prospect-tracker/internal/models"
	"github.com/david/prospect-tracker/internal/registry"
)

const prospectCols = `id, search_id, name, url, city, location_text, is_local,
	confidence, sources, notes, status, is_deleted, created_at`

func scanProspect(scan func(dest ...interface{}) error) (models.Prospect, error) {
	var p models.Prospect
	err := scan(
		&p.ID, &p.SearchID, &p.Name, &p.URL, &p.City, &p.LocationText, &p.IsLocal,
		&p.Confidence, &p.Sources, &p.Notes, &p.Status, &p.IsDeleted, &p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	if p.Sources == nil {
		p.Sources = []string{}
	}
	return p, nil
}

func (s *Store) InsertProspect(ctx context.Context, rec *models.Prospect) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO prospects (
			id, search_id, name, url, city, location_text, is_local,
			confidence, sources, notes, status, is_deleted, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		rec.ID, rec.SearchID, rec.Name, rec.URL, rec.City, rec.LocationText, rec.IsLocal,
		rec.Confidence, rec.Sources, rec.Notes, rec.Status, rec.IsDeleted, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prospect: %w", err)
	}
	return nil
}

func (s *Store) GetProspect(ctx context.Context, id uuid.UUID) (*models.Prospect, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM prospects WHERE id = $1", prospectCols), id)
	rec, err := scanProspect(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get prospect: %w", err)
	}
	return &rec, nil
}

// GetProspectByURL sees soft-deleted rows on purpose: their url still blocks
// recreation.
func (s *Store) GetProspectByURL(ctx context.Context, url string) (*models.Prospect, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM prospects WHERE url = $1", prospectCols), url)
	rec, err := scanProspect(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get prospect by url: %w", err)
	}
	return &rec, nil
}

func (s *Store) UpdateProspectStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	tag, err := s.pool.Exec(ctx, "UPDATE prospects SET status = $2 WHERE id = $1", id, status)
	if err != nil {
		return false, fmt.Errorf("update prospect status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) UpdateProspectNotes(ctx context.Context, id uuid.UUID, notes string) (bool, error) {
	tag, err := s.pool.Exec(ctx, "UPDATE prospects SET notes = $2 WHERE id = $1", id, notes)
	if err != nil {
		return false, fmt.Errorf("update prospect notes: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) SetProspectDeleted(ctx context.Context, id uuid.UUID, deleted bool) (bool, error) {
	tag, err := s.pool.Exec(ctx, "UPDATE prospects SET is_deleted = $2 WHERE id = $1", id, deleted)
	if err != nil {
		return false, fmt.Errorf("set prospect deleted: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func buildProspectWhere(f registry.ProspectFilter) (string, []interface{}) {
	where := "WHERE 1=1"
	var args []interface{}
	argIdx := 1

	if !f.IncludeDeleted {
		where += " AND is_deleted = false"
	}
	if f.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *f.Status)
		argIdx++
	}
	if f.IsLocal != nil {
		where += fmt.Sprintf(" AND is_local = $%d", argIdx)
		args = append(args, *f.IsLocal)
		argIdx++
	}
	if f.SearchID != nil {
		where += fmt.Sprintf(" AND search_id = $%d", argIdx)
		args = append(args, *f.SearchID)
		argIdx++
	}

	return where, args
}

func (s *Store) ListProspects(ctx context.Context, f registry.ProspectFilter) ([]models.Prospect, error) {
	where, args := buildProspectWhere(f)

	sql := fmt.Sprintf("SELECT %s FROM prospects %s ORDER BY created_at DESC", prospectCols, where)
	if f.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, f.Limit)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()

	out := []models.Prospect{}
	for rows.Next() {
		rec, err := scanProspect(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return out, nil
}
