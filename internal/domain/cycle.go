package domain

import "time"

// Cycle a closed campaign sweep (cycles table). Weekly logs folded into
// a cycle carry its ID as a back-reference; logs without one are still
// pending and eligible for the next cycle summary.
type Cycle struct {
	CycleID         string       `db:"cycle_id"`
	ClosedAt        time.Time    `db:"closed_at"`
	PropertiesReset int          `db:"properties_reset"`
	BlocksReset     int          `db:"blocks_reset"`
	Summary         CycleSummary // summary JSONB, snapshot at close time
}
