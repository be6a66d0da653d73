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

const searchCols = `id, industry, location, count, local_only, total_found,
	after_deduplication, local_count, prospects_returned, search_queries, created_at`

func scanSearch(scan func(dest ...interface{}) error) (models.Search, error) {
	var s models.Search
	err := scan(
		&s.ID, &s.Industry, &s.Location, &s.Count, &s.LocalOnly, &s.TotalFound,
		&s.AfterDeduplication, &s.LocalCount, &s.ProspectsReturned, &s.SearchQueries, &s.CreatedAt,
	)
	if err != nil {
		return s, err
	}
	if s.SearchQueries == nil {
		s.SearchQueries = []string{}
	}
	return s, nil
}

func (s *Store) InsertSearch(ctx context.Context, rec *models.Search) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO searches (
			id, industry, location, count, local_only, total_found,
			after_deduplication, local_count, prospects_returned, search_queries, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		rec.ID, rec.Industry, rec.Location, rec.Count, rec.LocalOnly, rec.TotalFound,
		rec.AfterDeduplication, rec.LocalCount, rec.ProspectsReturned, rec.SearchQueries, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert search: %w", err)
	}
	return nil
}

func (s *Store) GetSearch(ctx context.Context, id uuid.UUID) (*models.Search, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM searches WHERE id = $1", searchCols), id)
	rec, err := scanSearch(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get search: %w", err)
	}
	return &rec, nil
}

// buildSearchWhere mirrors the filter semantics of the registries: equality
// predicates only, combined with AND.
func buildSearchWhere(f registry.SearchFilter) (string, []interface{}) {
	where := "WHERE 1=1"
	var args []interface{}
	argIdx := 1

	if f.Industry != nil {
		where += fmt.Sprintf(" AND industry = $%d", argIdx)
		args = append(args, *f.Industry)
		argIdx++
	}
	if f.Location != nil {
		where += fmt.Sprintf(" AND location = $%d", argIdx)
		args = append(args, *f.Location)
		argIdx++
	}

	return where, args
}

func (s *Store) ListSearches(ctx context.Context, f registry.SearchFilter) ([]models.Search, error) {
	where, args := buildSearchWhere(f)

	sql := fmt.Sprintf("SELECT %s FROM searches %s ORDER BY created_at DESC", searchCols, where)
	if f.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, f.Limit)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	out := []models.Search{}
	for rows.Next() {
		rec, err := scanSearch(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return out, nil
}
