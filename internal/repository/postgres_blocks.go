package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"focozero-data/internal/domain"
)

type PostgresBlocksRepository struct {
	db *sql.DB
}

func NewPostgresBlocksRepository(db *sql.DB) *PostgresBlocksRepository {
	return &PostgresBlocksRepository{db: db}
}

const blockColumns = `
	block_id::text,
	area_id::text,
	number,
	total_properties,
	total_r,
	total_c,
	total_tb,
	total_pe,
	total_out,
	inhabitants,
	dogs,
	cats,
	assigned_to::text,
	work_date,
	worked_by::text,
	worked
`

func scanBlock(scan func(dest ...any) error) (*domain.Block, error) {
	var b domain.Block
	err := scan(
		&b.BlockID,
		&b.AreaID,
		&b.Number,
		&b.TotalProperties,
		&b.TotalByType.R,
		&b.TotalByType.C,
		&b.TotalByType.TB,
		&b.TotalByType.PE,
		&b.TotalByType.Out,
		&b.Inhabitants,
		&b.Dogs,
		&b.Cats,
		&b.AssignedTo,
		&b.WorkDate,
		&b.WorkedBy,
		&b.Worked,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBlocksRepository) GetBlock(ctx context.Context, blockID string) (*domain.Block, error) {
	q := `SELECT ` + blockColumns + ` FROM blocks WHERE block_id = $1`
	row := r.db.QueryRowContext(ctx, q, blockID)
	b, err := scanBlock(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: block %s", domain.ErrNotFound, blockID)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresBlocksRepository) ListBlocksByArea(ctx context.Context, areaID string) ([]*domain.Block, error) {
	q := `SELECT ` + blockColumns + ` FROM blocks WHERE area_id = $1 ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Block{}
	for rows.Next() {
		b, err := scanBlock(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateBlock shifts the numbers of later blocks up before inserting, so
// a block can be slotted into the middle of an area's sequence. The
// shift targets number >= the requested slot within the same area only.
func (r *PostgresBlocksRepository) CreateBlock(ctx context.Context, block *domain.Block) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE blocks SET number = number + 1
		WHERE area_id = $1 AND number >= $2
	`, block.AreaID, block.Number)
	if err != nil {
		return "", err
	}

	blockID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO blocks (
			block_id, area_id, number,
			total_properties, total_r, total_c, total_tb, total_pe, total_out,
			inhabitants, dogs, cats,
			assigned_to, work_date, worked_by, worked
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		blockID, block.AreaID, block.Number,
		block.TotalProperties, block.TotalByType.R, block.TotalByType.C,
		block.TotalByType.TB, block.TotalByType.PE, block.TotalByType.Out,
		block.Inhabitants, block.Dogs, block.Cats,
		block.AssignedTo, block.WorkDate, block.WorkedBy, block.Worked,
	)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return blockID, nil
}

func typeCounterColumn(ptype string) (string, bool) {
	switch ptype {
	case domain.PropertyTypeResidence:
		return "total_r", true
	case domain.PropertyTypeCommerce:
		return "total_c", true
	case domain.PropertyTypeTerrain:
		return "total_tb", true
	case domain.PropertyTypePOI:
		return "total_pe", true
	case domain.PropertyTypeOther:
		return "total_out", true
	}
	return "", false
}

func (r *PostgresBlocksRepository) IncrementCounters(ctx context.Context, blockID string, deltas BlockCounterDeltas) error {
	sets := []string{
		"total_properties = total_properties + $2",
		"inhabitants = inhabitants + $3",
		"dogs = dogs + $4",
		"cats = cats + $5",
	}
	args := []any{blockID, deltas.Properties, deltas.Inhabitants, deltas.Dogs, deltas.Cats}
	if deltas.PType != "" {
		col, ok := typeCounterColumn(deltas.PType)
		if !ok {
			return fmt.Errorf("unknown property type %q", deltas.PType)
		}
		sets = append(sets, fmt.Sprintf("%s = %s + $6", col, col))
		args = append(args, deltas.TypeDelta)
	}

	q := `UPDATE blocks SET ` + strings.Join(sets, ", ") + ` WHERE block_id = $1`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: block %s", domain.ErrNotFound, blockID)
	}
	return nil
}

func (r *PostgresBlocksRepository) AssignBlock(ctx context.Context, blockID, agentID string) error {
	q := `UPDATE blocks SET assigned_to = $2 WHERE block_id = $1`
	res, err := r.db.ExecContext(ctx, q, blockID, agentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: block %s", domain.ErrNotFound, blockID)
	}
	return nil
}

func (r *PostgresBlocksRepository) MarkWorked(ctx context.Context, blockIDs []string, agentID string, workDate time.Time) (int64, error) {
	if len(blockIDs) == 0 {
		return 0, nil
	}
	q := `
		UPDATE blocks
		SET assigned_to = NULL, worked_by = $2, work_date = $3, worked = TRUE
		WHERE block_id = ANY($1)
	`
	res, err := r.db.ExecContext(ctx, q, pq.Array(blockIDs), agentID, workDate)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresBlocksRepository) ResetResponsibles(ctx context.Context) (int64, error) {
	q := `UPDATE blocks SET assigned_to = NULL WHERE assigned_to IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresBlocksRepository) ListWorkedBlocks(ctx context.Context, areaID, agentID string, day time.Time) ([]*domain.Block, error) {
	q := `SELECT ` + blockColumns + `
		FROM blocks
		WHERE area_id = $1 AND worked_by = $2 AND work_date = $3 AND worked
		ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q, areaID, agentID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Block{}
	for rows.Next() {
		b, err := scanBlock(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresBlocksRepository) GetNumbersByIDs(ctx context.Context, blockIDs []string) (map[string]int, error) {
	out := map[string]int{}
	if len(blockIDs) == 0 {
		return out, nil
	}
	q := `SELECT block_id::text, number FROM blocks WHERE block_id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(blockIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var number int
		if err := rows.Scan(&id, &number); err != nil {
			return nil, err
		}
		out[id] = number
	}
	return out, rows.Err()
}
