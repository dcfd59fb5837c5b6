package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"focozero-data/internal/domain"
)

type PostgresCyclesRepository struct {
	db *sql.DB
}

func NewPostgresCyclesRepository(db *sql.DB) *PostgresCyclesRepository {
	return &PostgresCyclesRepository{db: db}
}

// resetCampaignTx the shared reset body: visited properties back to
// closed, worked blocks back to pending. Refused properties keep their
// status so the next sweep still knows where entry was denied, and
// worked_by/work_date stay as the record of the last completed pass.
func resetCampaignTx(ctx context.Context, tx *sql.Tx) (int64, int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE properties SET status = 'fechado' WHERE status = 'visitado'
	`)
	if err != nil {
		return 0, 0, err
	}
	props, err := res.RowsAffected()
	if err != nil {
		return 0, 0, err
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE blocks SET worked = FALSE WHERE worked
	`)
	if err != nil {
		return 0, 0, err
	}
	blocks, err := res.RowsAffected()
	if err != nil {
		return 0, 0, err
	}

	return props, blocks, nil
}

func (r *PostgresCyclesRepository) ResetCampaign(ctx context.Context) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	props, blocks, err := resetCampaignTx(ctx, tx)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return props, blocks, nil
}

func (r *PostgresCyclesRepository) CloseCycle(ctx context.Context, summary domain.CycleSummary, weeklyLogIDs []string) (*domain.Cycle, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal cycle summary: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	props, blocks, err := resetCampaignTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	cycle := &domain.Cycle{
		CycleID:         uuid.NewString(),
		ClosedAt:        time.Now().UTC(),
		PropertiesReset: int(props),
		BlocksReset:     int(blocks),
		Summary:         summary,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO cycles (cycle_id, closed_at, properties_reset, blocks_reset, summary)
		VALUES ($1, $2, $3, $4, $5)
	`, cycle.CycleID, cycle.ClosedAt, cycle.PropertiesReset, cycle.BlocksReset, payload)
	if err != nil {
		return nil, err
	}

	if len(weeklyLogIDs) > 0 {
		_, err = tx.ExecContext(ctx, `
			UPDATE weekly_logs SET cycle_id = $1 WHERE weekly_log_id = ANY($2)
		`, cycle.CycleID, pq.Array(weeklyLogIDs))
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cycle, nil
}
