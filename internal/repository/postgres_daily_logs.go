package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"focozero-data/internal/domain"
)

type PostgresDailyLogsRepository struct {
	db *sql.DB
}

func NewPostgresDailyLogsRepository(db *sql.DB) *PostgresDailyLogsRepository {
	return &PostgresDailyLogsRepository{db: db}
}

func (r *PostgresDailyLogsRepository) Upsert(ctx context.Context, log *domain.DailyLog) (string, error) {
	summary, err := json.Marshal(log.Summary)
	if err != nil {
		return "", fmt.Errorf("marshal daily summary: %w", err)
	}

	q := `
		INSERT INTO daily_logs (daily_log_id, agent_id, area_id, week, log_date, activity, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (agent_id, area_id, log_date)
		DO UPDATE SET week = EXCLUDED.week, activity = EXCLUDED.activity, summary = EXCLUDED.summary
		RETURNING daily_log_id::text
	`
	var id string
	err = r.db.QueryRowContext(ctx, q,
		uuid.NewString(), log.AgentID, log.AreaID, log.Week, log.LogDate, log.Activity, summary,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresDailyLogsRepository) GetByKey(ctx context.Context, agentID, areaID string, day time.Time) (*domain.DailyLog, error) {
	q := `
		SELECT daily_log_id::text, agent_id::text, area_id::text, week, log_date, activity, summary
		FROM daily_logs
		WHERE agent_id = $1 AND area_id = $2 AND log_date = $3
	`
	var l domain.DailyLog
	var summary []byte
	err := r.db.QueryRowContext(ctx, q, agentID, areaID, day).Scan(
		&l.DailyLogID, &l.AgentID, &l.AreaID, &l.Week, &l.LogDate, &l.Activity, &summary,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: daily log for agent %s area %s on %s",
			domain.ErrNotFound, agentID, areaID, day.Format("2006-01-02"))
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(summary, &l.Summary); err != nil {
		return nil, fmt.Errorf("unmarshal daily summary: %w", err)
	}
	return &l, nil
}

func (r *PostgresDailyLogsRepository) ListAgentAreaWeek(ctx context.Context, agentID, areaID string, week int) ([]domain.DailyLog, error) {
	q := `
		SELECT daily_log_id::text, agent_id::text, area_id::text, week, log_date, activity, summary
		FROM daily_logs
		WHERE agent_id = $1 AND area_id = $2 AND week = $3
		ORDER BY log_date
	`
	rows, err := r.db.QueryContext(ctx, q, agentID, areaID, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.DailyLog{}
	for rows.Next() {
		var l domain.DailyLog
		var summary []byte
		if err := rows.Scan(&l.DailyLogID, &l.AgentID, &l.AreaID, &l.Week, &l.LogDate, &l.Activity, &summary); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(summary, &l.Summary); err != nil {
			return nil, fmt.Errorf("unmarshal daily summary: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
