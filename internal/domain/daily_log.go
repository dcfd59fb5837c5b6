package domain

import "time"

// Activity-type codes for daily/weekly logs (Diario/Semanal.atividade).
// 4 = LI (imóvel survey), the default canvassing activity.
const (
	ActivityDefault = 4
	ActivityMin     = 1
	ActivityMax     = 6
)

// DailyLog per-agent, per-area, per-day rollup (daily_logs table).
// Singleton by (agent_id, area_id, log_date); recomputation replaces the
// row in place, it never appends.
type DailyLog struct {
	DailyLogID string    `db:"daily_log_id"`
	AgentID    string    `db:"agent_id"`
	AreaID     string    `db:"area_id"`
	Week       int       `db:"week"` // WeekNumber(LogDate), enforced on write
	LogDate    time.Time `db:"log_date"`
	Activity   int       `db:"activity"` // 1..6, default 4
	Summary    Summary   // summary JSONB
}
