package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/david/prospect-tracker/internal/models"
	"github.com/david/prospect-tracker/internal/registry"
)

const pitchCols = `id, prospect_id, company_name, owner, website, industry, is_local,
	location, contact, services, pain_points, pitch_options,
	recommended_pitch, recommended_pitch_reason, recommended_channel,
	outreach, sources, custom_instructions, is_deleted, created_at`

func scanPitch(scan func(dest ...interface{}) error) (models.Pitch, error) {
	var p models.Pitch
	var locationRaw, contactRaw, servicesRaw, optionsRaw, outreachRaw, sourcesRaw []byte

	err := scan(
		&p.ID, &p.ProspectID, &p.CompanyName, &p.Owner, &p.Website, &p.Industry, &p.IsLocal,
		&locationRaw, &contactRaw, &servicesRaw, &p.PainPoints, &optionsRaw,
		&p.RecommendedPitch, &p.RecommendedPitchReason, &p.RecommendedChannel,
		&outreachRaw, &sourcesRaw, &p.CustomInstructions, &p.IsDeleted, &p.CreatedAt,
	)
	if err != nil {
		return p, err
	}

	if err := json.Unmarshal(locationRaw, &p.Location); err != nil {
		return p, fmt.Errorf("decode location: %w", err)
	}
	if err := json.Unmarshal(contactRaw, &p.Contact); err != nil {
		return p, fmt.Errorf("decode contact: %w", err)
	}
	if err := json.Unmarshal(servicesRaw, &p.Services); err != nil {
		return p, fmt.Errorf("decode services: %w", err)
	}
	if err := json.Unmarshal(optionsRaw, &p.PitchOptions); err != nil {
		return p, fmt.Errorf("decode pitch options: %w", err)
	}
	if err := json.Unmarshal(outreachRaw, &p.Outreach); err != nil {
		return p, fmt.Errorf("decode outreach: %w", err)
	}
	if err := json.Unmarshal(sourcesRaw, &p.Sources); err != nil {
		return p, fmt.Errorf("decode sources: %w", err)
	}

	if p.PainPoints == nil {
		p.PainPoints = []string{}
	}
	if p.Services == nil {
		p.Services = []models.Service{}
	}
	if p.Sources == nil {
		p.Sources = []models.PitchSource{}
	}
	if p.Outreach.Alternatives == nil {
		p.Outreach.Alternatives = []models.OutreachAlternative{}
	}
	return p, nil
}

// InsertPitch writes the pitch and, when markPitched is set, flips that
// prospect to "pitched" inside the same transaction. Both commit or neither.
func (s *Store) InsertPitch(ctx context.Context, rec *models.Pitch, markPitched *uuid.UUID) error {
	locationJSON, err := json.Marshal(rec.Location)
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	contactJSON, err := json.Marshal(rec.Contact)
	if err != nil {
		return fmt.Errorf("encode contact: %w", err)
	}
	servicesJSON, err := json.Marshal(rec.Services)
	if err != nil {
		return fmt.Errorf("encode services: %w", err)
	}
	optionsJSON, err := json.Marshal(rec.PitchOptions)
	if err != nil {
		return fmt.Errorf("encode pitch options: %w", err)
	}
	outreachJSON, err := json.Marshal(rec.Outreach)
	if err != nil {
		return fmt.Errorf("encode outreach: %w", err)
	}
	sourcesJSON, err := json.Marshal(rec.Sources)
	if err != nil {
		return fmt.Errorf("encode sources: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO pitches (
			id, prospect_id, company_name, owner, website, industry, is_local,
			location, contact, services, pain_points, pitch_options,
			recommended_pitch, recommended_pitch_reason, recommended_channel,
			outreach, sources, custom_instructions, is_deleted, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`,
		rec.ID, rec.ProspectID, rec.CompanyName, rec.Owner, rec.Website, rec.Industry, rec.IsLocal,
		locationJSON, contactJSON, servicesJSON, rec.PainPoints, optionsJSON,
		rec.RecommendedPitch, rec.RecommendedPitchReason, rec.RecommendedChannel,
		outreachJSON, sourcesJSON, rec.CustomInstructions, rec.IsDeleted, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pitch: %w", err)
	}

	if markPitched != nil {
		_, err = tx.Exec(ctx, "UPDATE prospects SET status = $2 WHERE id = $1", *markPitched, models.StatusPitched)
		if err != nil {
			return fmt.Errorf("mark prospect pitched: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) GetPitch(ctx context.Context, id uuid.UUID) (*models.Pitch, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM pitches WHERE id = $1", pitchCols), id)
	rec, err := scanPitch(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pitch: %w", err)
	}
	return &rec, nil
}

// GetPitchByWebsite sees soft-deleted rows on purpose, same rule as prospect
// urls.
func (s *Store) GetPitchByWebsite(ctx context.Context, website string) (*models.Pitch, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM pitches WHERE website = $1", pitchCols), website)
	rec, err := scanPitch(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pitch by website: %w", err)
	}
	return &rec, nil
}

func (s *Store) GetPitchByProspect(ctx context.Context, prospectID uuid.UUID) (*models.Pitch, error) {
	sql := fmt.Sprintf("SELECT %s FROM pitches WHERE prospect_id = $1 ORDER BY created_at DESC LIMIT 1", pitchCols)
	row := s.pool.QueryRow(ctx, sql, prospectID)
	rec, err := scanPitch(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pitch by prospect: %w", err)
	}
	return &rec, nil
}

func (s *Store) SetPitchDeleted(ctx context.Context, id uuid.UUID, deleted bool) (bool, error) {
	tag, err := s.pool.Exec(ctx, "UPDATE pitches SET is_deleted = $2 WHERE id = $1", id, deleted)
	if err != nil {
		return false, fmt.Errorf("set pitch deleted: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func buildPitchWhere(f registry.PitchFilter) (string, []interface{}) {
	where := "WHERE 1=1"
	var args []interface{}
	argIdx := 1

	if !f.IncludeDeleted {
		where += " AND is_deleted = false"
	}
	if f.Industry != nil {
		where += fmt.Sprintf(" AND industry = $%d", argIdx)
		args = append(args, *f.Industry)
		argIdx++
	}
	if f.IsLocal != nil {
		where += fmt.Sprintf(" AND is_local = $%d", argIdx)
		args = append(args, *f.IsLocal)
		argIdx++
	}

	return where, args
}

func (s *Store) ListPitches(ctx context.Context, f registry.PitchFilter) ([]models.Pitch, error) {
	where, args := buildPitchWhere(f)

	sql := fmt.Sprintf("SELECT %s FROM pitches %s ORDER BY created_at DESC", pitchCols, where)
	if f.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, f.Limit)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list pitches: %w", err)
	}
	defer rows.Close()

	out := []models.Pitch{}
	for rows.Next() {
		rec, err := scanPitch(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan pitch: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return out, nil
}
