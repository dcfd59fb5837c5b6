package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"focozero-data/internal/domain"
)

type PostgresAreasRepository struct {
	db *sql.DB
}

func NewPostgresAreasRepository(db *sql.DB) *PostgresAreasRepository {
	return &PostgresAreasRepository{db: db}
}

func (r *PostgresAreasRepository) GetArea(ctx context.Context, areaID string) (*domain.Area, error) {
	q := `
		SELECT
			area_id::text,
			name,
			map_url,
			responsible_id::text
		FROM areas
		WHERE area_id = $1
	`
	var a domain.Area
	err := r.db.QueryRowContext(ctx, q, areaID).Scan(
		&a.AreaID,
		&a.Name,
		&a.MapURL,
		&a.ResponsibleID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: area %s", domain.ErrNotFound, areaID)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresAreasRepository) ListAreas(ctx context.Context) ([]*domain.Area, error) {
	q := `
		SELECT
			area_id::text,
			name,
			map_url,
			responsible_id::text
		FROM areas
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Area{}
	for rows.Next() {
		var a domain.Area
		if err := rows.Scan(&a.AreaID, &a.Name, &a.MapURL, &a.ResponsibleID); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *PostgresAreasRepository) CreateArea(ctx context.Context, area *domain.Area) (string, error) {
	areaID := uuid.NewString()
	q := `
		INSERT INTO areas (area_id, name, map_url, responsible_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, q, areaID, area.Name, area.MapURL, area.ResponsibleID)
	if err != nil {
		return "", err
	}
	return areaID, nil
}

func (r *PostgresAreasRepository) UpdateArea(ctx context.Context, area *domain.Area) error {
	q := `
		UPDATE areas
		SET name = $2, map_url = $3, responsible_id = $4
		WHERE area_id = $1
	`
	res, err := r.db.ExecContext(ctx, q, area.AreaID, area.Name, area.MapURL, area.ResponsibleID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: area %s", domain.ErrNotFound, area.AreaID)
	}
	return nil
}

// DeleteArea cascades manually instead of relying on schema-level ON
// DELETE CASCADE, so the counts stay observable and the order explicit:
// properties, then blocks, then the area itself.
func (r *PostgresAreasRepository) DeleteArea(ctx context.Context, areaID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM properties
		WHERE block_id IN (SELECT block_id FROM blocks WHERE area_id = $1)
	`, areaID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM blocks WHERE area_id = $1`, areaID)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM areas WHERE area_id = $1`, areaID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: area %s", domain.ErrNotFound, areaID)
	}

	return tx.Commit()
}
