package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/menudesk/internal/db"
	"github.com/alexanderramin/menudesk/internal/domain"
)

// SQLiteProviderStageRepo implements ProviderStageRepo.
type SQLiteProviderStageRepo struct {
	db db.DBTX
}

func NewSQLiteProviderStageRepo(conn db.DBTX) *SQLiteProviderStageRepo {
	return &SQLiteProviderStageRepo{db: conn}
}

const providerStageColumns = `provider_id, stage_id, category_name, stage_name, season_name, gender,
	start_date, end_date, pulled_at`

// Upsert inserts the stage or refreshes its catalog fields. The pulled_at
// stamp of an existing row is kept unless s carries one.
func (r *SQLiteProviderStageRepo) Upsert(ctx context.Context, s *domain.ProviderStage) error {
	now := nowUTC()
	query := `INSERT INTO provider_stages (` + providerStageColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider_id, stage_id) DO UPDATE SET
			category_name = excluded.category_name,
			stage_name    = excluded.stage_name,
			season_name   = excluded.season_name,
			gender        = excluded.gender,
			start_date    = excluded.start_date,
			end_date      = excluded.end_date,
			pulled_at     = COALESCE(excluded.pulled_at, provider_stages.pulled_at),
			updated_at    = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ProviderID,
		s.StageID,
		s.CategoryName,
		s.StageName,
		s.SeasonName,
		string(s.Gender),
		nullableTimeToString(s.StartDate, domain.DateLayout),
		nullableTimeToString(s.EndDate, domain.DateLayout),
		nullableTimeToString(s.PulledAt, time.RFC3339),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting provider stage %s: %w", s.Key(), err)
	}
	return nil
}

func (r *SQLiteProviderStageRepo) Get(ctx context.Context, providerID, stageID string) (*domain.ProviderStage, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+providerStageColumns+` FROM provider_stages WHERE provider_id = ? AND stage_id = ?`,
		providerID, stageID)
	s, err := scanProviderStage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("provider stage %s:%s: %w", providerID, stageID, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteProviderStageRepo) List(ctx context.Context, providerID string) ([]*domain.ProviderStage, error) {
	query := `SELECT ` + providerStageColumns + ` FROM provider_stages`
	var args []any
	if providerID != "" {
		query += ` WHERE provider_id = ?`
		args = append(args, providerID)
	}
	query += ` ORDER BY provider_id, category_name, stage_name, start_date DESC, stage_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing provider stages: %w", err)
	}
	defer rows.Close()

	var stages []*domain.ProviderStage
	for rows.Next() {
		s, err := scanProviderStage(rows)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provider stages: %w", err)
	}
	return stages, nil
}

func (r *SQLiteProviderStageRepo) Providers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT provider_id FROM provider_stages ORDER BY provider_id`)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning provider id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SQLiteProviderStageRepo) MarkPulled(ctx context.Context, providerID, stageID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE provider_stages SET pulled_at = ?, updated_at = ? WHERE provider_id = ? AND stage_id = ?`,
		at.UTC().Format(time.RFC3339), nowUTC(), providerID, stageID)
	if err != nil {
		return fmt.Errorf("marking provider stage pulled: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("provider stage %s:%s: %w", providerID, stageID, ErrNotFound)
	}
	return nil
}

// scanProviderStage returns sql.ErrNoRows unwrapped so callers can add
// their own context.
func scanProviderStage(row rowScanner) (*domain.ProviderStage, error) {
	var s domain.ProviderStage
	var gender string
	var startDate, endDate, pulledAt sql.NullString

	err := row.Scan(
		&s.ProviderID, &s.StageID, &s.CategoryName, &s.StageName, &s.SeasonName, &gender,
		&startDate, &endDate, &pulledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning provider stage: %w", err)
	}
	s.Gender = domain.Gender(gender)
	s.StartDate = parseNullableTime(startDate, domain.DateLayout)
	s.EndDate = parseNullableTime(endDate, domain.DateLayout)
	s.PulledAt = parseNullableTime(pulledAt, time.RFC3339)
	return &s, nil
}
