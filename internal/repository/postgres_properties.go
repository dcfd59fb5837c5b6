package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"focozero-data/internal/domain"
)

type PostgresPropertiesRepository struct {
	db *sql.DB
}

func NewPostgresPropertiesRepository(db *sql.DB) *PostgresPropertiesRepository {
	return &PostgresPropertiesRepository{db: db}
}

const propertyColumns = `
	property_id::text,
	block_id::text,
	position,
	address,
	ptype,
	inhabitants,
	dogs,
	cats,
	note,
	status
`

func scanProperty(scan func(dest ...any) error) (*domain.Property, error) {
	var p domain.Property
	err := scan(
		&p.PropertyID,
		&p.BlockID,
		&p.Position,
		&p.Address,
		&p.PType,
		&p.Inhabitants,
		&p.Dogs,
		&p.Cats,
		&p.Note,
		&p.Status,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPropertiesRepository) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE property_id = $1`
	row := r.db.QueryRowContext(ctx, q, propertyID)
	p, err := scanProperty(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: property %s", domain.ErrNotFound, propertyID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresPropertiesRepository) ListPropertiesByBlock(ctx context.Context, blockID string) ([]*domain.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE block_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, blockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateProperty shifts the positions of later properties up before
// inserting, the same slotting scheme blocks use for their numbers.
func (r *PostgresPropertiesRepository) CreateProperty(ctx context.Context, property *domain.Property) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE properties SET position = position + 1
		WHERE block_id = $1 AND position >= $2
	`, property.BlockID, property.Position)
	if err != nil {
		return "", err
	}

	propertyID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO properties (
			property_id, block_id, position, address, ptype,
			inhabitants, dogs, cats, note, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		propertyID, property.BlockID, property.Position, property.Address, property.PType,
		property.Inhabitants, property.Dogs, property.Cats, property.Note, property.Status,
	)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return propertyID, nil
}

func (r *PostgresPropertiesRepository) UpdateProperty(ctx context.Context, propertyID string, upd PropertyUpdate) error {
	sets := []string{}
	args := []any{propertyID}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.PType != nil {
		add("ptype", *upd.PType)
	}
	if upd.Inhabitants != nil {
		add("inhabitants", *upd.Inhabitants)
	}
	if upd.Dogs != nil {
		add("dogs", *upd.Dogs)
	}
	if upd.Cats != nil {
		add("cats", *upd.Cats)
	}
	if upd.Note != nil {
		add("note", *upd.Note)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if len(sets) == 0 {
		return nil
	}

	q := `UPDATE properties SET ` + strings.Join(sets, ", ") + ` WHERE property_id = $1`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: property %s", domain.ErrNotFound, propertyID)
	}
	return nil
}

func (r *PostgresPropertiesRepository) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	q := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'fechado'),
			COUNT(*) FILTER (WHERE status = 'visitado'),
			COUNT(*) FILTER (WHERE status = 'recusa')
		FROM properties
	`
	var c domain.StatusCounts
	err := r.db.QueryRowContext(ctx, q).Scan(&c.Fechado, &c.Visitado, &c.Recusa)
	if err != nil {
		return domain.StatusCounts{}, err
	}
	return c, nil
}

func (r *PostgresPropertiesRepository) CountVisitedByType(ctx context.Context) (domain.TypeCounts, error) {
	q := `
		SELECT
			COUNT(*) FILTER (WHERE ptype = 'r'),
			COUNT(*) FILTER (WHERE ptype = 'c'),
			COUNT(*) FILTER (WHERE ptype = 'tb'),
			COUNT(*) FILTER (WHERE ptype = 'pe'),
			COUNT(*) FILTER (WHERE ptype = 'out')
		FROM properties
		WHERE status = 'visitado'
	`
	var c domain.TypeCounts
	err := r.db.QueryRowContext(ctx, q).Scan(&c.R, &c.C, &c.TB, &c.PE, &c.Out)
	if err != nil {
		return domain.TypeCounts{}, err
	}
	return c, nil
}
