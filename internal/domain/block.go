package domain

import "database/sql"

// Block numbered subdivision of an area (blocks table).
//
// The aggregate counters (TotalProperties, TotalByType, Inhabitants,
// Dogs, Cats) are maintained by atomic per-field increments issued from
// property creation; they are never read-modify-written.
//
// Assignment state machine: unassigned → assigned (AssignedTo set) →
// worked (AssignedTo cleared, WorkedBy/WorkDate set, Worked=true) →
// cycle reset flips Worked back to false without erasing the
// WorkedBy/WorkDate history.
type Block struct {
	BlockID         string         `db:"block_id"`
	AreaID          string         `db:"area_id"`
	Number          int            `db:"number"` // unique within the area
	TotalProperties int            `db:"total_properties"`
	TotalByType     TypeCounts     // total_r, total_c, total_tb, total_pe, total_out
	Inhabitants     int            `db:"inhabitants"`
	Dogs            int            `db:"dogs"`
	Cats            int            `db:"cats"`
	AssignedTo      sql.NullString `db:"assigned_to"` // nullable
	WorkDate        sql.NullTime   `db:"work_date"`   // nullable, day boundary
	WorkedBy        sql.NullString `db:"worked_by"`   // nullable
	Worked          bool           `db:"worked"`      // NOT NULL, default false
}
