package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"focozero-data/internal/domain"
	"focozero-data/internal/rollup"
)

type PostgresVisitsRepository struct {
	db *sql.DB
}

func NewPostgresVisitsRepository(db *sql.DB) *PostgresVisitsRepository {
	return &PostgresVisitsRepository{db: db}
}

const visitColumns = `
	visit_id::text,
	property_id::text,
	agent_id::text,
	ptype,
	visit_date,
	dep_a1, dep_a2, dep_b, dep_c, dep_d1, dep_d2, dep_e,
	dep_eliminated,
	sample_initial,
	sample_final,
	foci_count,
	focus,
	larvicide_qty,
	dep_treated,
	status
`

func scanVisit(scan func(dest ...any) error) (*domain.Visit, error) {
	var v domain.Visit
	err := scan(
		&v.VisitID,
		&v.PropertyID,
		&v.AgentID,
		&v.PType,
		&v.VisitDate,
		&v.Deposits.A1, &v.Deposits.A2, &v.Deposits.B, &v.Deposits.C,
		&v.Deposits.D1, &v.Deposits.D2, &v.Deposits.E,
		&v.DepEliminated,
		&v.SampleInitial,
		&v.SampleFinal,
		&v.FociCount,
		&v.Focus,
		&v.LarvicideQty,
		&v.DepTreated,
		&v.Status,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresVisitsRepository) GetVisit(ctx context.Context, visitID string) (*domain.Visit, error) {
	q := `SELECT ` + visitColumns + ` FROM visits WHERE visit_id = $1`
	row := r.db.QueryRowContext(ctx, q, visitID)
	v, err := scanVisit(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: visit %s", domain.ErrNotFound, visitID)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *PostgresVisitsRepository) CreateWithStatus(ctx context.Context, visit *domain.Visit, newStatus string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	visitID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO visits (
			visit_id, property_id, agent_id, ptype, visit_date,
			dep_a1, dep_a2, dep_b, dep_c, dep_d1, dep_d2, dep_e,
			dep_eliminated, sample_initial, sample_final,
			foci_count, focus, larvicide_qty, dep_treated, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`,
		visitID, visit.PropertyID, visit.AgentID, visit.PType, visit.VisitDate,
		visit.Deposits.A1, visit.Deposits.A2, visit.Deposits.B, visit.Deposits.C,
		visit.Deposits.D1, visit.Deposits.D2, visit.Deposits.E,
		visit.DepEliminated, visit.SampleInitial, visit.SampleFinal,
		visit.FociCount, visit.Focus, visit.LarvicideQty, visit.DepTreated, visit.Status,
	)
	if err != nil {
		return "", err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE properties SET status = $2 WHERE property_id = $1
	`, visit.PropertyID, newStatus)
	if err != nil {
		return "", err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", fmt.Errorf("%w: property %s", domain.ErrNotFound, visit.PropertyID)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return visitID, nil
}

func (r *PostgresVisitsRepository) ListAgentAreaDay(ctx context.Context, agentID, areaID string, day time.Time) ([]rollup.VisitRow, error) {
	q := `
		SELECT
			v.visit_id::text,
			v.property_id::text,
			v.agent_id::text,
			v.ptype,
			v.visit_date,
			v.dep_a1, v.dep_a2, v.dep_b, v.dep_c, v.dep_d1, v.dep_d2, v.dep_e,
			v.dep_eliminated,
			v.sample_initial,
			v.sample_final,
			v.foci_count,
			v.focus,
			v.larvicide_qty,
			v.dep_treated,
			v.status,
			b.block_id::text,
			b.number
		FROM visits v
		JOIN properties p ON p.property_id = v.property_id
		JOIN blocks b ON b.block_id = p.block_id
		WHERE v.agent_id = $1 AND b.area_id = $2 AND v.visit_date = $3
		ORDER BY v.visit_date, v.visit_id
	`
	rows, err := r.db.QueryContext(ctx, q, agentID, areaID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []rollup.VisitRow{}
	for rows.Next() {
		var vr rollup.VisitRow
		v := &vr.Visit
		err := rows.Scan(
			&v.VisitID,
			&v.PropertyID,
			&v.AgentID,
			&v.PType,
			&v.VisitDate,
			&v.Deposits.A1, &v.Deposits.A2, &v.Deposits.B, &v.Deposits.C,
			&v.Deposits.D1, &v.Deposits.D2, &v.Deposits.E,
			&v.DepEliminated,
			&v.SampleInitial,
			&v.SampleFinal,
			&v.FociCount,
			&v.Focus,
			&v.LarvicideQty,
			&v.DepTreated,
			&v.Status,
			&vr.BlockID,
			&vr.BlockNumber,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, vr)
	}
	return out, rows.Err()
}
