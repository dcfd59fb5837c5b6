package repository

import (
	"context"

	"focozero-data/internal/domain"
)

// WeeklyLogsRepository weekly rollup rows, singleton per
// (agent_id, area_id, week).
type WeeklyLogsRepository interface {
	// Upsert writes the log for its composite key, replacing any
	// previous row in place. The upsert does not touch cycle_id, so a
	// rebuilt log stays linked to its cycle. Returns the row ID.
	Upsert(ctx context.Context, log *domain.WeeklyLog) (string, error)

	// GetByKey fetches the singleton log for (agent, area, week).
	GetByKey(ctx context.Context, agentID, areaID string, week int) (*domain.WeeklyLog, error)

	// UpdateNotes sets the free-text notes and activity code without
	// recomputing the summary.
	UpdateNotes(ctx context.Context, weeklyLogID, notes string, activity int) error

	// ListUnlinked returns every weekly log not yet linked to a closed
	// cycle (cycle_id IS NULL), the set eligible for the next cycle
	// summary.
	ListUnlinked(ctx context.Context) ([]*domain.WeeklyLog, error)
}
