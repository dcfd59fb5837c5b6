package repository

import (
	"context"
	"time"

	"focozero-data/internal/domain"
)

// DailyLogsRepository daily rollup rows, singleton per
// (agent_id, area_id, log_date).
type DailyLogsRepository interface {
	// Upsert writes the log for its composite key, replacing any
	// previous row in place, so recomputation never leaves a visible
	// gap. Returns the row ID.
	Upsert(ctx context.Context, log *domain.DailyLog) (string, error)

	// GetByKey fetches the singleton log for (agent, area, day).
	GetByKey(ctx context.Context, agentID, areaID string, day time.Time) (*domain.DailyLog, error)

	// ListAgentAreaWeek returns the agent/area logs of one week ordered
	// by date.
	ListAgentAreaWeek(ctx context.Context, agentID, areaID string, week int) ([]domain.DailyLog, error)
}
