package domain

import "database/sql"

// DefaultWeeklyNotes legacy default for Semanal.observacoes.
const DefaultWeeklyNotes = "Nenhuma observação."

// WeeklyLog per-agent, per-area, per-week rollup (weekly_logs table).
// Singleton by (agent_id, area_id, week). Built from daily logs but not
// coupled to them: re-deriving or deleting a weekly log never touches
// its source daily logs, and both stay independently editable.
type WeeklyLog struct {
	WeeklyLogID string         `db:"weekly_log_id"`
	AgentID     string         `db:"agent_id"`
	AreaID      string         `db:"area_id"`
	Week        int            `db:"week"`
	Activity    int            `db:"activity"`
	DaysWorked  int            `db:"days_worked"` // distinct daily-log dates
	Notes       string         `db:"notes"`
	Summary     WeeklySummary  // summary JSONB + blocks_worked text
	CycleID     sql.NullString `db:"cycle_id"` // set when a cycle is closed
}
