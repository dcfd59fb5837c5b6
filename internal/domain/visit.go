package domain

import "time"

// Visit immutable record of one inspection event (visits table).
//
// PType is a snapshot of the property's type at visit time, immune to
// later property edits. Focus is derived from FociCount, never supplied
// directly. The date is normalized to a day boundary before persisting.
type Visit struct {
	VisitID    string    `db:"visit_id"`
	PropertyID string    `db:"property_id"`
	AgentID    string    `db:"agent_id"`
	PType      string    `db:"ptype"` // snapshot of Property.PType
	VisitDate  time.Time `db:"visit_date"`

	Deposits      DepositCounts // dep_a1 .. dep_e
	DepEliminated int           `db:"dep_eliminated"`
	SampleInitial int           `db:"sample_initial"` // larval sample numbering (amostraInicial)
	SampleFinal   int           `db:"sample_final"`   // amostraFinal
	FociCount     int           `db:"foci_count"`
	Focus         bool          `db:"focus"` // FociCount > 0
	LarvicideQty  float64       `db:"larvicide_qty"`
	DepTreated    int           `db:"dep_treated"`
	Status        string        `db:"status"` // outcome, mirrors the property's new status
}
