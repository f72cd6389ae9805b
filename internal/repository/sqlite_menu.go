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

// SQLiteMenuRepo implements MenuRepo. Payloads are stored as JSON text.
type SQLiteMenuRepo struct {
	db db.DBTX
}

func NewSQLiteMenuRepo(conn db.DBTX) *SQLiteMenuRepo {
	return &SQLiteMenuRepo{db: conn}
}

const menuColumns = `id, name, default_language, payload, version, published_version, published_at, created_at, updated_at`

func (r *SQLiteMenuRepo) Create(ctx context.Context, m *domain.Menu) error {
	payload, err := encodePayload(m.Payload)
	if err != nil {
		return err
	}
	query := `INSERT INTO menus (` + menuColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.DefaultLanguage,
		payload,
		m.Version,
		m.PublishedVersion,
		nullableTimeToString(m.PublishedAt, time.RFC3339),
		m.CreatedAt.UTC().Format(time.RFC3339),
		m.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting menu: %w", err)
	}
	return nil
}

func (r *SQLiteMenuRepo) GetByID(ctx context.Context, id string) (*domain.Menu, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = ?`, id)
	return scanMenu(row)
}

func (r *SQLiteMenuRepo) GetByName(ctx context.Context, name string) (*domain.Menu, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE name = ?`, name)
	return scanMenu(row)
}

func (r *SQLiteMenuRepo) List(ctx context.Context) ([]*domain.Menu, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing menus: %w", err)
	}
	defer rows.Close()

	var menus []*domain.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menus: %w", err)
	}
	return menus, nil
}

func (r *SQLiteMenuRepo) SavePayload(ctx context.Context, id string, payload []domain.RawNode, expectedVersion int) (int, error) {
	encoded, err := encodePayload(payload)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE menus SET payload = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`,
		encoded, nowUTC(), id, expectedVersion)
	if err != nil {
		return 0, fmt.Errorf("saving menu payload: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("saving menu payload: %w", err)
	}
	if n == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("menu %s at version %d, expected %d: %w", id, current.Version, expectedVersion, ErrVersionConflict)
	}
	return expectedVersion + 1, nil
}

func (r *SQLiteMenuRepo) Publish(ctx context.Context, id string, at time.Time) (*domain.Publication, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payload, err := encodePayload(m.Payload)
	if err != nil {
		return nil, err
	}
	stamp := at.UTC().Format(time.RFC3339)
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO menu_publications (menu_id, version, payload, published_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.Version, payload, stamp); err != nil {
		return nil, fmt.Errorf("recording publication: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE menus SET published_version = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		m.Version, stamp, stamp, m.ID); err != nil {
		return nil, fmt.Errorf("marking menu published: %w", err)
	}
	published, _ := time.Parse(time.RFC3339, stamp)
	return &domain.Publication{MenuID: m.ID, Version: m.Version, Payload: m.Payload, PublishedAt: published}, nil
}

func (r *SQLiteMenuRepo) ListPublications(ctx context.Context, id string) ([]*domain.Publication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT menu_id, version, payload, published_at FROM menu_publications WHERE menu_id = ? ORDER BY version DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	var pubs []*domain.Publication
	for rows.Next() {
		var p domain.Publication
		var payload, publishedAt string
		if err := rows.Scan(&p.MenuID, &p.Version, &payload, &publishedAt); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		if p.Payload, err = decodePayload(payload); err != nil {
			return nil, err
		}
		if p.PublishedAt, err = parseTimestamp(publishedAt, "published_at"); err != nil {
			return nil, err
		}
		pubs = append(pubs, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publications: %w", err)
	}
	return pubs, nil
}

func (r *SQLiteMenuRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting menu: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("menu %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanMenu(row rowScanner) (*domain.Menu, error) {
	var m domain.Menu
	var payload, createdAt, updatedAt string
	var publishedVersion sql.NullInt64
	var publishedAt sql.NullString

	err := row.Scan(
		&m.ID, &m.Name, &m.DefaultLanguage, &payload, &m.Version,
		&publishedVersion, &publishedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("menu: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning menu: %w", err)
	}

	if m.Payload, err = decodePayload(payload); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	m.PublishedVersion = nullableIntToPtr(publishedVersion)
	m.PublishedAt = parseNullableTime(publishedAt, time.RFC3339)
	return &m, nil
}
