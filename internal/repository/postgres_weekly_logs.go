package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"focozero-data/internal/domain"
)

type PostgresWeeklyLogsRepository struct {
	db *sql.DB
}

func NewPostgresWeeklyLogsRepository(db *sql.DB) *PostgresWeeklyLogsRepository {
	return &PostgresWeeklyLogsRepository{db: db}
}

const weeklyLogColumns = `
	weekly_log_id::text,
	agent_id::text,
	area_id::text,
	week,
	activity,
	days_worked,
	notes,
	summary,
	cycle_id::text
`

func scanWeeklyLog(scan func(dest ...any) error) (*domain.WeeklyLog, error) {
	var l domain.WeeklyLog
	var summary []byte
	err := scan(
		&l.WeeklyLogID, &l.AgentID, &l.AreaID, &l.Week,
		&l.Activity, &l.DaysWorked, &l.Notes, &summary, &l.CycleID,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(summary, &l.Summary); err != nil {
		return nil, fmt.Errorf("unmarshal weekly summary: %w", err)
	}
	return &l, nil
}

// Upsert leaves cycle_id out of the conflict update so a recomputed log
// keeps its cycle link.
func (r *PostgresWeeklyLogsRepository) Upsert(ctx context.Context, log *domain.WeeklyLog) (string, error) {
	summary, err := json.Marshal(log.Summary)
	if err != nil {
		return "", fmt.Errorf("marshal weekly summary: %w", err)
	}

	q := `
		INSERT INTO weekly_logs (weekly_log_id, agent_id, area_id, week, activity, days_worked, notes, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (agent_id, area_id, week)
		DO UPDATE SET activity = EXCLUDED.activity,
			days_worked = EXCLUDED.days_worked,
			notes = EXCLUDED.notes,
			summary = EXCLUDED.summary
		RETURNING weekly_log_id::text
	`
	var id string
	err = r.db.QueryRowContext(ctx, q,
		uuid.NewString(), log.AgentID, log.AreaID, log.Week,
		log.Activity, log.DaysWorked, log.Notes, summary,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresWeeklyLogsRepository) GetByKey(ctx context.Context, agentID, areaID string, week int) (*domain.WeeklyLog, error) {
	q := `SELECT ` + weeklyLogColumns + `
		FROM weekly_logs
		WHERE agent_id = $1 AND area_id = $2 AND week = $3`
	row := r.db.QueryRowContext(ctx, q, agentID, areaID, week)
	l, err := scanWeeklyLog(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: weekly log for agent %s area %s week %d",
			domain.ErrNotFound, agentID, areaID, week)
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *PostgresWeeklyLogsRepository) UpdateNotes(ctx context.Context, weeklyLogID, notes string, activity int) error {
	q := `UPDATE weekly_logs SET notes = $2, activity = $3 WHERE weekly_log_id = $1`
	res, err := r.db.ExecContext(ctx, q, weeklyLogID, notes, activity)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: weekly log %s", domain.ErrNotFound, weeklyLogID)
	}
	return nil
}

func (r *PostgresWeeklyLogsRepository) ListUnlinked(ctx context.Context) ([]*domain.WeeklyLog, error) {
	q := `SELECT ` + weeklyLogColumns + `
		FROM weekly_logs
		WHERE cycle_id IS NULL
		ORDER BY week, agent_id, area_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.WeeklyLog{}
	for rows.Next() {
		l, err := scanWeeklyLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
